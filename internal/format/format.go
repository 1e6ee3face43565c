// Package format renders numbers and times for human-readable output.
package format

import (
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Printer formats values for one locale.
type Printer struct {
	p *message.Printer
}

// NewPrinter returns a Printer for a BCP 47 tag. Unknown or malformed tags
// fall back to English.
func NewPrinter(lang string) *Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Printer{p: message.NewPrinter(tag)}
}

// BMI renders a BMI rounded to two decimals using the locale's separator.
func (pr *Printer) BMI(v float64) string {
	return pr.p.Sprintf("%.2f", v)
}

// Decimal renders v with the given number of decimals.
func (pr *Printer) Decimal(v float64, places int) string {
	return pr.p.Sprint(number.Decimal(v, number.Scale(places)))
}

// Ago renders t relative to now, e.g. "3 minutes ago".
func Ago(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
