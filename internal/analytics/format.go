package analytics

import (
	"fmt"
	"math"
	"strings"
)

// Undefined is rendered for every metric whose value does not exist for
// the given input (empty series, zero variance, no losing periods, ...).
const Undefined = "—"

// FormatPercent renders x as a percentage with 2 decimals ("12.34%").
func FormatPercent(x float64) string {
	if math.IsNaN(x) {
		return Undefined
	}
	return groupThousands(fmt.Sprintf("%.2f", x*100)) + "%"
}

// FormatRatio renders x with 4 decimals ("1.4142").
func FormatRatio(x float64) string {
	if math.IsNaN(x) {
		return Undefined
	}
	return groupThousands(fmt.Sprintf("%.4f", x))
}

// FormatCash renders x with 2 decimals and thousands separators ("12,500.00").
func FormatCash(x float64) string {
	if math.IsNaN(x) {
		return Undefined
	}
	return groupThousands(fmt.Sprintf("%.2f", x))
}

// groupThousands inserts comma separators into the integer part of a
// plain formatted number (optionally signed, optionally with decimals).
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}
