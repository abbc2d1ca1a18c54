// Package core holds the domain model of the planner: historical monthly
// records, upcoming goals, and the result types produced by an analysis.
//
// This file contains parsing helpers for monetary amounts entered as text.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered amount string to a decimal value.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// rejects signs: amounts are entered as magnitudes. Returns ErrInvalidAmount
// for anything that does not parse to a non-negative decimal.
//
// Examples:
//
//	ParseAmount("1500")    -> 1500, nil
//	ParseAmount("12,34")   -> 12.34, nil
//	ParseAmount("-5")      -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
