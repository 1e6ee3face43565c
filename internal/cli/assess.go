package cli

import (
	"fmt"

	"github.com/rcliao/fitfizz/internal/advice"
	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/observability"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute BMI, classify it and suggest meals",
		Long:  "Submit a measurement. Weight is in kilograms, height in centimeters. A successful assessment unlocks chat for the session.",
		Run:   runAssess,
	}

	cmd.Flags().StringP("weight", "w", "", "Weight in kg (required)")
	cmd.Flags().StringP("height", "H", "", "Height in cm (required)")

	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagRequired("height")

	RootCmd.AddCommand(cmd)
}

// assessOutput is the JSON shape of a successful assessment.
type assessOutput struct {
	Session       string `json:"session"`
	MeasurementID string `json:"measurement_id"`
	advisor.Assessment
}

func runAssess(cmd *cobra.Command, args []string) {
	weight, _ := cmd.Flags().GetString("weight")
	height, _ := cmd.Flags().GetString("height")
	name := getSession()

	// Rejected input never reaches the engine or the store.
	m, err := advisor.ParseMeasurement(weight, height)
	if err != nil {
		observability.WithFields("session", name).Warn("measurement rejected", "weight", weight, "height", height)
		exitErr("assess", fmt.Errorf("%w: please enter valid weight and height values", err))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	out, err := advice.NewService(s).Assess(cmd.Context(), name, m)
	if err != nil {
		exitErr("assess", err)
	}

	if textOutput() {
		renderAssessment(cmd.OutOrStdout(), printer(), out.Assessment)
		return
	}
	printJSON(cmd.OutOrStdout(), assessOutput{Session: name, MeasurementID: out.Measurement.ID, Assessment: out.Assessment})
}
