// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors: document totals are
// aggregated at full precision and rounded only at the display boundary.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// NewMoneyFromInt creates a Money value from an integer amount.
func NewMoneyFromInt(v int64) Money {
	return decimal.NewFromInt(v)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Hundred is used for percentage math (discount, tax rates).
var Hundred = decimal.NewFromInt(100)

// Percent applies a percentage rate to an amount: amount * rate / 100.
// Full precision is kept; nothing is rounded here.
func Percent(amount, rate Money) Money {
	return amount.Mul(rate).Div(Hundred)
}

// RoundDisplay rounds a Money value to two fraction digits for presentation.
// Engine internals never call this; only the DTO layer does.
func RoundDisplay(m Money) Money {
	return m.Round(2)
}
