package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance is the money-rounding tolerance used for every zero comparison.
var Tolerance = decimal.New(1, -2)

// IsNegligible reports whether d is within Tolerance of zero.
func IsNegligible(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Tolerance)
}

// NormalizeCurrency upper-cases an ISO-4217 style code and reports whether it
// is three ASCII letters.
func NormalizeCurrency(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return code, false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return code, false
		}
	}
	return code, true
}
