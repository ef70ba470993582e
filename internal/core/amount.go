// Package core provides the domain types shared by the analytics,
// forecast and insight engines.
package core

import (
	"math"
	"strconv"
	"strings"
)

// Amount is a signed monetary value with a missing-value marker.
// Invalid source amounts become missing instead of failing the load.
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a present amount.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// ParseAmount converts a raw amount string to an Amount. It accepts an
// optional currency sign, thousands separators and a decimal comma.
// Unparseable input yields a missing amount, never an error.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		// Decimal comma form ("12,34"); thousands commas always pair with a dot.
		if strings.Count(s, ",") == 1 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}
	}
	return Amount{Value: v, Valid: true}
}

// Round2 rounds half away from zero to two decimal places. All monetary
// figures pass through it before crossing the boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
