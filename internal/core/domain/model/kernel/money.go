package kernel

import (
	"fmt"

	"tracking/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative decimal amount used for prices, commissions,
// penalties and discounts. All arithmetic happens on shopspring decimals;
// rounding to two places (half-up) is applied by Round at computation
// boundaries, never implicitly.
//
// The zero value is a valid 0.00 amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a Money from its decimal string representation.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// ZeroMoney returns a 0.00 amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Mul multiplies the amount by a factor. The result is not rounded.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts. The result may not be negative;
// subtracting past zero clamps to zero.
func (m Money) Sub(other Money) Money {
	res := m.amount.Sub(other.amount)
	if res.IsNegative() {
		res = decimal.Zero
	}
	return Money{amount: res}
}

// Round returns the amount rounded half-up to two decimal places.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(2)}
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts numerically.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with exactly two decimal places, e.g. "9500.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
