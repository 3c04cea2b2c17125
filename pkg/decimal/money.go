package decimal

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision for
// report formatting. Engine math stays float64; values cross into Money at
// the output boundary.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64.
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromString creates a new Money instance from a string.
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents using banker's rounding.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundWhole rounds to whole currency units.
func (m Money) RoundWhole() Money {
	return Money{m.Decimal.Round(0)}
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Add adds another Money amount.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// IsZero checks if the amount is zero.
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// IsNegative checks if the amount is negative.
func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// Min returns the minimum of two Money amounts.
func Min(a, b Money) Money {
	if a.Decimal.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Max returns the maximum of two Money amounts.
func Max(a, b Money) Money {
	if a.Decimal.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// Zero returns a zero Money amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the plain numeric representation. Whole-rounded amounts
// print without a fraction; everything else keeps two decimal places.
func (m Money) String() string {
	if m.Decimal.Exponent() >= 0 {
		return m.Decimal.String()
	}
	return m.Decimal.StringFixed(2)
}

// Format formats the money amount with a currency symbol.
func (m Money) Format() string {
	return "¥" + m.String()
}
