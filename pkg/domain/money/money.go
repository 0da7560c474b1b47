// Package money provides the Money value object used for all balances and
// transaction amounts. Amounts are stored as an integer number of cents so
// arithmetic is exact at two decimal places.
package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrTooManyDecimals is returned when an amount carries more than two
	// decimal places.
	ErrTooManyDecimals = errors.New("amount has more than 2 decimal places")

	// ErrAmountOverflow is returned when an amount exceeds the safe integer
	// range once converted to cents.
	ErrAmountOverflow = errors.New("amount exceeds maximum safe value")

	// ErrInvalidAmount is returned when an amount string cannot be parsed as
	// a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Money represents a monetary value in the bank's single operating currency.
// Invariants:
//   - The amount is always stored in cents.
//   - Construction rejects values with more than two decimal places.
type Money struct {
	cents int64
}

// New creates a Money from a float amount in rupees.
func New(amount float64) (Money, error) {
	cents, err := toCents(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{cents: cents}, nil
}

// Parse creates a Money from a decimal string such as "1250.75".
func Parse(s string) (Money, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return New(f)
}

// FromCents creates a Money directly from cents. Used when hydrating from the
// record store and in tests.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Zero returns the zero monetary value.
func Zero() Money {
	return Money{}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float returns the amount in rupees.
func (m Money) Float() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of the two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Subtract returns the difference of the two amounts.
func (m Money) Subtract(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// Equals reports whether the two amounts are the same.
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// MultiplyRound multiplies the amount by a scalar factor and rounds the
// result to the nearest cent, half away from zero. Used for interest accrual.
func (m Money) MultiplyRound(factor float64) Money {
	return Money{cents: int64(math.Round(float64(m.cents) * factor))}
}

// String formats the amount with exactly two decimal places, e.g. "1250.75".
// This is the canonical persisted representation.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float())
}

// toCents converts a float amount to cents, rejecting values that are not
// representable at two decimal places.
func toCents(amount float64) (int64, error) {
	amountStr := fmt.Sprintf("%.10f", amount)
	if parts := strings.SplitN(amountStr, ".", 2); len(parts) == 2 {
		decimals := strings.TrimRight(parts[1], "0")
		if len(decimals) > 2 {
			return 0, ErrTooManyDecimals
		}
	}

	rat, ok := new(big.Rat).SetString(fmt.Sprintf("%.2f", amount))
	if !ok {
		return 0, ErrInvalidAmount
	}
	cents := new(big.Rat).Mul(rat, big.NewRat(100, 1))
	if !cents.IsInt() || !cents.Num().IsInt64() {
		return 0, ErrAmountOverflow
	}
	return cents.Num().Int64(), nil
}
