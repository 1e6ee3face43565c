package advisor

import (
	"strings"
	"testing"
)

func TestAnswerQuery_Rules(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category Category
		want     Rule
	}{
		{"snack any case", "Any SNACKS?", NormalWeight, RuleSnack},
		{"snack lower", "any snacks?", Underweight, RuleSnack},
		{"water", "how much Water?", Obesity, RuleHydration},
		{"hydration", "Hydration tips", NormalWeight, RuleHydration},
		{"rice overweight", "I love rice", Overweight, RuleRice},
		{"rice obesity", "RICE please", Obesity, RuleRice},
		{"rice normal falls through", "I love rice", NormalWeight, RuleFallback},
		{"rice underweight falls through", "I love rice", Underweight, RuleFallback},
		{"snack beats water", "snack with water", NormalWeight, RuleSnack},
		{"water beats rice", "rice and water", Obesity, RuleHydration},
		{"unknown", "what about protein?", NormalWeight, RuleFallback},
		{"long s is not s", "\u017fnack?", NormalWeight, RuleFallback},
		{"kelvin sign lowers to k", "any snac\u212a?", NormalWeight, RuleSnack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := AnswerQuery(tt.query, tt.category)
			if !ok {
				t.Fatal("expected a reply")
			}
			if r.Rule != tt.want {
				t.Errorf("rule = %q, want %q", r.Rule, tt.want)
			}
			if r.Text == "" {
				t.Error("empty reply text")
			}
		})
	}
}

func TestAnswerQuery_FallbackEchoesQuery(t *testing.T) {
	r, ok := AnswerQuery("  Is \"keto\" good?  ", NormalWeight)
	if !ok {
		t.Fatal("expected a reply")
	}
	if !strings.Contains(r.Text, `"Is "keto" good?"`) {
		t.Errorf("expected verbatim echo, got %q", r.Text)
	}
	if !strings.Contains(r.Text, `"snack"`) || !strings.Contains(r.Text, `"water"`) {
		t.Errorf("expected suggestions, got %q", r.Text)
	}
}

func TestAnswerQuery_NoOps(t *testing.T) {
	if _, ok := AnswerQuery("", NormalWeight); ok {
		t.Error("empty query should be a no-op")
	}
	if _, ok := AnswerQuery("   \t", Obesity); ok {
		t.Error("blank query should be a no-op")
	}
	if _, ok := AnswerQuery("snack", CategoryNone); ok {
		t.Error("query without a category should be a no-op")
	}
}

func TestGreeting(t *testing.T) {
	g := Greeting(NormalWeight)
	if !strings.Contains(g, "Normal Weight") {
		t.Errorf("expected label in greeting, got %q", g)
	}
}
