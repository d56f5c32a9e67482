// Package types provides shared value types.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with NUMERIC(10,2) semantics.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for exact values.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}

// MustMoney creates a Money value from a string, panicking on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewMoneyFromFloat creates a Money value from a float, rounded to two
// fractional digits. Prefer NewMoneyFromString where precision matters.
func NewMoneyFromFloat(f float64) Money {
	return decimal.NewFromFloat(f).Round(2)
}

// ZeroMoney returns the zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// MulQuantity returns price x quantity rounded to two fractional digits.
// This is the subtotal rule for sale and purchase order lines.
func MulQuantity(price Money, quantity int) Money {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
