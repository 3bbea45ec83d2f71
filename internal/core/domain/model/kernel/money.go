package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscrepancyTolerance is the maximum absolute difference between expected
// and collected COD cash that is still treated as "no discrepancy"
// (one hundredth of a currency unit).
var DiscrepancyTolerance = decimal.New(1, -2)

// Money is an exact-arithmetic monetary amount in a single currency.
// It wraps shopspring/decimal so financial aggregation never goes through
// binary floating point. Amounts are signed; the ledger sign convention
// (positive = carrier owes the store) is documented in the ledger package.
//
// The zero value is a valid amount of zero currency units.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of zero currency units.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoneyFromDecimal wraps a decimal amount.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// NewMoneyFromString parses a decimal string such as "25000" or "-12.50".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// NewMoneyFromInt creates an amount of whole currency units.
func NewMoneyFromInt(n int64) Money {
	return Money{amount: decimal.NewFromInt(n)}
}

// NewMoneyFromFloat converts a float amount. Intended only for API edges
// that receive JSON numbers; domain code should stay in Money.
func NewMoneyFromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m − other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Neg returns −m.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// MulPercent scales the amount by a whole percentage, e.g. MulPercent(50)
// halves it. Used for failed-attempt fees, which are a configurable fraction
// of the normal delivery fee.
func (m Money) MulPercent(percent int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual reports exact equality of amounts.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// WithinTolerance reports whether |m − other| does not exceed tolerance.
func (m Money) WithinTolerance(other Money, tolerance decimal.Decimal) bool {
	return m.amount.Sub(other.amount).Abs().LessThanOrEqual(tolerance)
}

// Decimal exposes the underlying decimal value for persistence mapping and
// response serialization.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount as a plain decimal string.
func (m Money) String() string {
	return m.amount.String()
}
