package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InterestScale is the number of fractional digits interest is rounded to.
const InterestScale int32 = 10

var hundred = decimal.NewFromInt(100)

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	return nil
}

func requireNonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidArgument, name, v)
	}
	return nil
}

// Interest returns balance * rate / 100 rounded half-up to InterestScale digits.
func Interest(balance, rate decimal.Decimal) decimal.Decimal {
	return balance.Mul(rate).DivRound(hundred, InterestScale)
}
