package advisor

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule identifies which responder rule produced a reply.
type Rule string

const (
	RuleSnack     Rule = "snack"
	RuleHydration Rule = "hydration"
	RuleRice      Rule = "rice"
	RuleFallback  Rule = "fallback"
)

// ValidRules are the rules a reply can carry.
var ValidRules = map[Rule]bool{
	RuleSnack:     true,
	RuleHydration: true,
	RuleRice:      true,
	RuleFallback:  true,
}

// Reply is the responder's answer to one query.
type Reply struct {
	Text string `json:"text"`
	Rule Rule   `json:"rule"`
}

const (
	snackReply     = "A good snack is cottage cheese, nuts, or a small piece of fruit!"
	hydrationReply = "Remember to drink at least 8 glasses of water a day!"
	riceReply      = "Focus on small portions of brown rice instead of white, as part of a calorie-controlled meal."
	fallbackReply  = `Your question, "%s", requires complex AI integration. Try asking about "snack" or "water"!`
)

// AnswerQuery matches a free-text query against the fixed keyword rules.
// It reports false, and produces nothing, when no category has been
// assessed yet or the query is blank.
func AnswerQuery(raw string, c Category) (Reply, bool) {
	query := strings.TrimSpace(raw)
	if c == CategoryNone || query == "" {
		return Reply{}, false
	}

	lowered := cases.Lower(language.Und).String(query)
	switch {
	case strings.Contains(lowered, "snack"):
		return Reply{Text: snackReply, Rule: RuleSnack}, true
	case strings.Contains(lowered, "water"), strings.Contains(lowered, "hydration"):
		return Reply{Text: hydrationReply, Rule: RuleHydration}, true
	case strings.Contains(lowered, "rice") && c.heavy():
		return Reply{Text: riceReply, Rule: RuleRice}, true
	}
	return Reply{Text: fmt.Sprintf(fallbackReply, query), Rule: RuleFallback}, true
}

// Greeting is the opening line once chat is unlocked for a category.
func Greeting(c Category) string {
	return fmt.Sprintf("Hello! Based on your %s status, how can I help with your meal plan?", c)
}
