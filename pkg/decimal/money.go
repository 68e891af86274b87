package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceScale is the number of decimal places kept on running balances so
// repeated growth does not inflate the digit count without bound.
const BalanceScale = 10

var one = decimal.NewFromInt(1)

// Money represents a monetary amount for display
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// String returns the amount with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders whole dollars with thousands separators, e.g. "$1,234,568" or "-$12".
func (m Money) Format() string {
	s := m.Decimal.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg && s != "0" {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// Compound returns (1+rate)^years by repeated multiplication. Non-positive years yield 1.
func Compound(rate decimal.Decimal, years int) decimal.Decimal {
	factor := one
	step := one.Add(rate)
	for i := 0; i < years; i++ {
		factor = factor.Mul(step)
	}
	return factor
}

// Min returns the smaller of a and b
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// RoundBalance rounds a running balance to BalanceScale places.
func RoundBalance(d decimal.Decimal) decimal.Decimal {
	return d.Round(BalanceScale)
}

// WithinRelative reports whether a and b differ by at most tol relative to the larger magnitude.
// Two values at or near zero compare equal when their absolute difference is within tol.
func WithinRelative(a, b decimal.Decimal, tol float64) bool {
	diff := a.Sub(b).Abs()
	scale := Max(a.Abs(), b.Abs())
	if scale.LessThan(one) {
		scale = one
	}
	return diff.LessThanOrEqual(scale.Mul(decimal.NewFromFloat(tol)))
}
