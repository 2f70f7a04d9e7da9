package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeMoney   = errors.New("amount must not be negative")
	ErrFractionalMoney = errors.New("amount must be a whole number")
)

// Money is an amount in whole currency units.
type Money int64

// ParseMoney converts user-entered text such as "120" or "120.00" into Money.
// Fractional and negative values are rejected.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeMoney, s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrFractionalMoney, s)
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount out of range: %s", s)
	}
	return Money(d.IntPart()), nil
}

// String formats the amount without a currency symbol.
func (m Money) String() string {
	return decimal.NewFromInt(int64(m)).String()
}
