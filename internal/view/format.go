package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Placeholder rendered for missing or non-numeric values.
const Placeholder = "-"

// Number formats a price-like value with grouped thousands and at most two
// decimal digits. NaN and infinities render as the placeholder.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	// CommafWithDigits truncates; round to cents first.
	return humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

// OptNumber formats a nullable numeric field.
func OptNumber(p *float64) string {
	if p == nil {
		return Placeholder
	}
	return Number(*p)
}

// Percent formats a nullable percentage with an explicit sign.
func Percent(p *float64) string {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return Placeholder
	}
	return fmt.Sprintf("%+.2f%%", *p)
}

// Ratio formats a nullable R-multiple, e.g. "1.98R".
func Ratio(p *float64) string {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return Placeholder
	}
	return fmt.Sprintf("%.2fR", *p)
}

// OptText formats a nullable string field.
func OptText(p *string) string {
	if p == nil || *p == "" {
		return Placeholder
	}
	return *p
}

// YesNo formats a boolean as YES / NO.
func YesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

// DisplayTicker strips the IDX market suffix for display.
func DisplayTicker(t string) string {
	return strings.TrimSuffix(t, ".JK")
}
