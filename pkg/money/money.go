// Package money holds exact-decimal helpers for invoice line amounts.
// Every comparison between totals goes through shopspring/decimal so rounding
// noise in binary floating point never surfaces as a pricing discrepancy.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Extend returns quantity × unitPrice, the total a line should carry.
func Extend(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// AbsDiff returns |a - b|.
func AbsDiff(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Abs()
}

// RelativeDeviation returns |actual - expected| / |expected|.
// When expected is zero the ratio is undefined: a zero actual yields 0 and any
// other actual yields 1 (a full deviation).
func RelativeDeviation(actual, expected decimal.Decimal) decimal.Decimal {
	if expected.IsZero() {
		if actual.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(1)
	}
	return AbsDiff(actual, expected).Div(expected.Abs())
}

// Ratio returns part / whole as a float64, or 0 when whole is zero.
func Ratio(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).InexactFloat64()
}

// LeadingDigit returns the first nonzero digit (1-9) of |d|. Sign and
// magnitude are ignored, so 0.042 and -4200 both lead with 4. Zero has no
// leading digit and reports ok=false.
func LeadingDigit(d decimal.Decimal) (digit int, ok bool) {
	if d.IsZero() {
		return 0, false
	}
	// The coefficient carries every significant digit; the exponent only shifts it.
	for _, c := range d.Abs().Coefficient().String() {
		if c >= '1' && c <= '9' {
			return int(c - '0'), true
		}
	}
	return 0, false
}

// Parse parses an amount string, wrapping the failure with the offending input.
func Parse(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d, nil
}
