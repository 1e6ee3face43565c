// Package advisor implements the BMI advisory engine: BMI arithmetic,
// category classification, static meal plans and the keyword chat responder.
package advisor

import (
	"fmt"
	"strings"
)

// Category is a BMI classification. The zero value means no measurement
// has been assessed yet.
type Category int

const (
	CategoryNone Category = iota
	Underweight
	NormalWeight
	Overweight
	Obesity
)

var categoryLabels = map[Category]string{
	Underweight:  "Underweight",
	NormalWeight: "Normal Weight",
	Overweight:   "Overweight",
	Obesity:      "Obesity",
}

var categoryKeys = map[Category]string{
	Underweight:  "underweight",
	NormalWeight: "normal_weight",
	Overweight:   "overweight",
	Obesity:      "obesity",
}

// Categories lists every assessable category in threshold order.
var Categories = []Category{Underweight, NormalWeight, Overweight, Obesity}

// String returns the display label, e.g. "Normal Weight".
func (c Category) String() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return "None"
}

// Key returns the storage form, e.g. "normal_weight". CategoryNone is "".
func (c Category) Key() string {
	return categoryKeys[c]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Key()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = CategoryNone
		return nil
	}
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory accepts either the storage key or the display label,
// case-insensitively.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if norm == categoryKeys[c] || norm == strings.ToLower(categoryLabels[c]) {
			return c, nil
		}
	}
	// Accept "normal" and "normal-weight" as well.
	switch strings.ReplaceAll(norm, "-", "_") {
	case "normal", "normal_weight":
		return NormalWeight, nil
	}
	return CategoryNone, fmt.Errorf("unknown category %q (valid: underweight, normal_weight, overweight, obesity)", s)
}

// heavy reports whether the category calls for a calorie deficit.
func (c Category) heavy() bool {
	return c == Overweight || c == Obesity
}
