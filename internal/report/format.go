package report

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// nonFinite renders values the calculator can produce from degenerate inputs.
func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "n/a", true
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	}
	return "", false
}

// Number formats v with thousands separators and at most digits decimals.
func Number(v float64, digits int) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	rounded := v
	scale := math.Pow(10, float64(digits))
	if scaled := v * scale; !math.IsInf(scaled, 0) {
		rounded = math.Round(scaled) / scale
	}
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return humanize.Commaf(rounded)
}

// Currency formats a dollar amount, e.g. "$1,357,000".
func Currency(v float64, digits int) string {
	s := Number(v, digits)
	if len(s) > 0 && s[0] == '-' {
		return "-$" + s[1:]
	}
	return "$" + s
}

// Percent formats a percentage with no decimals, e.g. "5,855%".
func Percent(v float64) string {
	return Number(v, 0) + "%"
}

// Months formats a payback period with one fixed decimal, e.g. "0.2 mo".
func Months(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s + " mo"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " mo"
}
