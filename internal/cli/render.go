package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/format"
	"github.com/rcliao/fitfizz/internal/model"
)

const assistant = "AI Assistant: "

func renderAssessment(w io.Writer, pr *format.Printer, a advisor.Assessment) {
	fmt.Fprintf(w, "BMI: %s\n", pr.BMI(a.BMI))
	fmt.Fprintf(w, "Category: %s\n", a.Category)
	fmt.Fprintln(w, "Interpretation: This is a key metric used to assess overall health.")
	fmt.Fprintln(w)
	renderPlan(w, a.Plan)
	fmt.Fprintln(w)
	fmt.Fprintln(w, assistant+a.Greeting)
}

func renderPlan(w io.Writer, plan advisor.MealPlan) {
	fmt.Fprintf(w, "Your Meal Plan | Goal: %s\n", plan.Goal)
	for _, m := range plan.Meals {
		fmt.Fprintf(w, "  %s: %s\n", m.Slot, m.Description)
	}
}

func renderTurn(w io.Writer, query, reply string) {
	fmt.Fprintf(w, "You: %s\n%s%s\n", query, assistant, reply)
}

func renderMeasurements(w io.Writer, pr *format.Printer, list []model.Measurement) {
	for _, m := range list {
		fmt.Fprintf(w, "%s  BMI %s  %-13s  %s kg / %s m\n",
			format.Ago(m.CreatedAt), pr.BMI(m.BMI), m.Category, pr.Decimal(m.WeightKg, 1), pr.Decimal(m.HeightM, 2))
	}
}

func renderSessions(w io.Writer, pr *format.Printer, list []model.Session) {
	for _, s := range list {
		bmi := "-"
		if s.BMI > 0 {
			bmi = pr.BMI(s.BMI)
		}
		fmt.Fprintf(w, "%-16s %-13s BMI %-6s %d measurements, %d turns, updated %s\n",
			s.Name, s.Category, bmi, s.Measurements, s.Turns, format.Ago(s.UpdatedAt))
	}
}

func jsonLine(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}
