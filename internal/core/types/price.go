// Package types provides common type aliases and utilities.
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a regulator price value. The wire format allows at most
// 6 integer digits and 6 fractional digits, "." as decimal separator.
// Uses decimal.Decimal to avoid floating-point errors.
type Price = decimal.Decimal

// Price digit limits mandated by the wire format.
const (
	PriceIntegerDigits  = 6
	PriceFractionDigits = 6
)

// priceMax is the first value with more than 6 integer digits.
var priceMax = decimal.New(1, PriceIntegerDigits)

// MustPrice creates a Price from a string, panics on error.
// Use only for constants and tests.
func MustPrice(s string) Price {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FormatPrice renders a price in the wire convention: "." separator,
// exactly 6 fractional digits, no thousands separators.
func FormatPrice(p Price) string {
	return p.StringFixed(PriceFractionDigits)
}

// CheckPrice verifies the wire digit limits: at most 6 integer digits
// and at most 6 fractional digits, non-negative.
func CheckPrice(p Price) error {
	if p.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if p.Abs().Compare(priceMax) >= 0 {
		return fmt.Errorf("price exceeds %d integer digits", PriceIntegerDigits)
	}
	if p.Exponent() < -PriceFractionDigits {
		return fmt.Errorf("price exceeds %d fractional digits", PriceFractionDigits)
	}
	return nil
}
