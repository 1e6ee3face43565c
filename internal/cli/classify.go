package cli

import (
	"fmt"
	"strconv"

	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/spf13/cobra"
)

func init() {
	classifyCmd := &cobra.Command{
		Use:   "classify [bmi]",
		Short: "Classify a raw BMI value",
		Args:  cobra.ExactArgs(1),
		Run:   runClassify,
	}

	mealsCmd := &cobra.Command{
		Use:   "meals [category]",
		Short: "Show the meal plan for a category",
		Long:  "Show the static meal plan. Category: underweight, normal_weight, overweight, obesity.",
		Args:  cobra.ExactArgs(1),
		Run:   runMeals,
	}

	RootCmd.AddCommand(classifyCmd, mealsCmd)
}

func runClassify(cmd *cobra.Command, args []string) {
	bmi, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		exitErr("classify", fmt.Errorf("invalid bmi %q", args[0]))
	}
	c := advisor.Classify(bmi)

	if textOutput() {
		fmt.Fprintln(cmd.OutOrStdout(), c)
		return
	}
	printJSON(cmd.OutOrStdout(), map[string]any{"bmi": bmi, "category": c, "label": c.String()})
}

func runMeals(cmd *cobra.Command, args []string) {
	c, err := advisor.ParseCategory(args[0])
	if err != nil {
		exitErr("meals", err)
	}
	plan := advisor.SuggestMeals(c)

	if textOutput() {
		renderPlan(cmd.OutOrStdout(), plan)
		return
	}
	printJSON(cmd.OutOrStdout(), plan)
}
