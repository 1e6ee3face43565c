package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/fitfizz/internal/advice"
	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/format"
	"github.com/rcliao/fitfizz/internal/store"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestAssessThenChat(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out := execute(t, "", "assess", "-d", db, "-s", "lee", "-f", "json", "--weight", "70", "--height", "175")
	var assessed struct {
		Session  string           `json:"session"`
		BMI      float64          `json:"bmi"`
		Category advisor.Category `json:"category"`
		MealPlan advisor.MealPlan `json:"meal_plan"`
	}
	if err := json.Unmarshal([]byte(out), &assessed); err != nil {
		t.Fatalf("parse assess output %q: %v", out, err)
	}
	if assessed.Session != "lee" || assessed.Category != advisor.NormalWeight {
		t.Fatalf("unexpected assessment %+v", assessed)
	}
	if assessed.MealPlan.Goal != "Maintenance (Balanced Diet)" {
		t.Errorf("unexpected goal %q", assessed.MealPlan.Goal)
	}

	out = execute(t, "Any snacks?\n\nhow about rice\n", "chat", "-d", db, "-s", "lee", "-f", "json")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 turns (blank line skipped), got %d: %q", len(lines), out)
	}
	var first, second turnOutput
	json.Unmarshal([]byte(lines[0]), &first)
	json.Unmarshal([]byte(lines[1]), &second)
	if first.Rule != advisor.RuleSnack {
		t.Errorf("expected snack rule, got %q", first.Rule)
	}
	if second.Rule != advisor.RuleFallback || !strings.Contains(second.Reply, `"how about rice"`) {
		t.Errorf("expected fallback echoing the query, got %+v", second)
	}

	out = execute(t, "", "chat", "-d", db, "-s", "lee", "-f", "text", "stay", "hydrated", "with", "water")
	if !strings.HasPrefix(out, "You: stay hydrated with water\nAI Assistant: Remember to drink") {
		t.Errorf("unexpected text turn %q", out)
	}

	out = execute(t, "", "transcript", "-d", db, "-s", "lee", "-f", "json")
	var turns []json.RawMessage
	if err := json.Unmarshal([]byte(out), &turns); err != nil {
		t.Fatal(err)
	}
	if len(turns) != 3 {
		t.Errorf("expected 3 turns, got %d", len(turns))
	}
}

func TestAssessTextOutput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out := execute(t, "", "assess", "-d", db, "-s", "max", "-f", "text", "-w", "95", "-H", "175")
	for _, want := range []string{
		"BMI: 31.02",
		"Category: Obesity",
		"Goal: Weight Loss (Calorie Deficit)",
		"Breakfast: Egg whites and vegetables.",
		"AI Assistant: Hello! Based on your Obesity status",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestClassifyAndMeals(t *testing.T) {
	if out := execute(t, "", "classify", "-f", "text", "24.9"); strings.TrimSpace(out) != "Normal Weight" {
		t.Errorf("classify 24.9 = %q", out)
	}
	if out := execute(t, "", "classify", "-f", "text", "25"); strings.TrimSpace(out) != "Overweight" {
		t.Errorf("classify 25 = %q", out)
	}

	out := execute(t, "", "meals", "-f", "text", "underweight")
	if !strings.Contains(out, "Weight Gain (Calorie Dense)") {
		t.Errorf("unexpected meals output %q", out)
	}
}

func TestRenderAssessment_Locale(t *testing.T) {
	a := advisor.NewSession().Assess(advisor.Measurement{WeightKg: 70, HeightM: 1.75})

	var buf bytes.Buffer
	renderAssessment(&buf, format.NewPrinter("de"), a)
	if !strings.Contains(buf.String(), "BMI: 22,86") {
		t.Errorf("expected German decimal separator, got:\n%s", buf.String())
	}
}

func TestChatLoop_AnswersEachLineAsItArrives(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "cli.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	svc := advice.NewService(s)
	if _, err := svc.Assess(ctx, "ivy", advisor.Measurement{WeightKg: 70, HeightM: 1.75}); err != nil {
		t.Fatal(err)
	}

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := chatLoop(ctx, svc, "ivy", inR, outW, true)
		outW.Close()
		done <- err
	}()

	replies := bufio.NewReader(outR)
	readTurn := func() string {
		t.Helper()
		you, err := replies.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		reply, err := replies.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return you + reply
	}

	// stdin stays open between lines; each reply must come back first.
	io.WriteString(inW, "any snacks?\n")
	if got := readTurn(); !strings.HasPrefix(got, "You: any snacks?\nAI Assistant: A good snack") {
		t.Fatalf("unexpected first turn %q", got)
	}
	io.WriteString(inW, "\n")
	io.WriteString(inW, "water?\n")
	if got := readTurn(); !strings.HasPrefix(got, "You: water?\nAI Assistant: Remember to drink") {
		t.Fatalf("unexpected second turn %q", got)
	}

	inW.Close()
	if err := <-done; err != nil {
		t.Fatalf("chat loop: %v", err)
	}
}
