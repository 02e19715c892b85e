package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var opened = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newChecking(t *testing.T, number, balance string) *CheckingAccount {
	t.Helper()
	a, err := NewCheckingAccount(number, dec(balance), opened)
	require.NoError(t, err)
	return a
}

func newSavings(t *testing.T, number, balance, rate string) *SavingsAccount {
	t.Helper()
	a, err := NewSavingsAccount(number, dec(balance), opened, dec(rate))
	require.NoError(t, err)
	return a
}
