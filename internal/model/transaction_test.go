package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeposit(t *testing.T) {
	a := newChecking(t, "C1", "0")
	d, err := NewDeposit(a, dec("12.34"))
	require.NoError(t, err)

	assert.Equal(t, KindDeposit, d.Kind())
	assert.Same(t, a, d.Account())
	assert.True(t, d.Amount().Equal(dec("12.34")))
	assert.NotEmpty(t, d.ID())
	assert.False(t, d.Timestamp().IsZero())
	assert.True(t, a.Balance().IsZero(), "construction must not execute")
	assert.Empty(t, a.Transactions())
}

func TestNewTransaction_Errors(t *testing.T) {
	a := newChecking(t, "C1", "0")

	for _, amount := range []string{"0", "-5"} {
		_, err := NewDeposit(a, dec(amount))
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = NewWithdrawal(a, dec(amount))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	_, err := NewDeposit(nil, dec("1"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewWithdrawal(nil, dec("1"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var typedNil *SavingsAccount
	_, err = NewDeposit(typedNil, dec("1"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewWithdrawal((*CheckingAccount)(nil), dec("1"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExecute_OnlyOnce(t *testing.T) {
	a := newChecking(t, "C1", "0")
	d, err := NewDeposit(a, dec("5"))
	require.NoError(t, err)

	require.NoError(t, d.Execute())
	err = d.Execute()
	require.ErrorIs(t, err, ErrInvalidArgument)

	assert.True(t, a.Balance().Equal(dec("5")))
	assert.Len(t, a.Transactions(), 1)
}

func TestExecute_RetryAfterFailure(t *testing.T) {
	a := newChecking(t, "C1", "0")
	w, err := NewWithdrawal(a, dec("5"))
	require.NoError(t, err)

	require.ErrorIs(t, w.Execute(), ErrInsufficientBalance)
	require.NoError(t, a.Deposit(dec("5")))
	require.NoError(t, w.Execute())

	assert.True(t, a.Balance().IsZero())
	assert.Equal(t, []Transaction{w}, a.Transactions())
}

func TestExecute_ZeroValue(t *testing.T) {
	assert.ErrorIs(t, (&Deposit{}).Execute(), ErrInvalidArgument)
	assert.ErrorIs(t, (&Withdrawal{}).Execute(), ErrInvalidArgument)
}

func TestDepositExecute(t *testing.T) {
	a := newSavings(t, "S1", "1000", "5")
	d, err := NewDeposit(a, dec("200"))
	require.NoError(t, err)

	require.NoError(t, d.Execute())
	assert.True(t, a.Balance().Equal(dec("1200")))
	require.Len(t, a.Transactions(), 1)
	assert.Same(t, d, a.Transactions()[0])
}

func TestWithdrawalExecute(t *testing.T) {
	a := newChecking(t, "C1", "50")
	w, err := NewWithdrawal(a, dec("20"))
	require.NoError(t, err)

	require.NoError(t, w.Execute())
	assert.True(t, a.Balance().Equal(dec("30")))
	require.Len(t, a.Transactions(), 1)
	assert.Equal(t, KindWithdrawal, a.Transactions()[0].Kind())
}

func TestWithdrawalExecute_InsufficientLeavesHistory(t *testing.T) {
	a := newChecking(t, "C1", "50")
	w, err := NewWithdrawal(a, dec("50.01"))
	require.NoError(t, err)

	err = w.Execute()
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, a.Balance().Equal(dec("50")))
	assert.Empty(t, a.Transactions())
}

func TestExecute_HistoryOrder(t *testing.T) {
	a := newChecking(t, "C1", "0")
	var want []Transaction
	for _, amt := range []string{"10", "20", "30"} {
		d, err := NewDeposit(a, dec(amt))
		require.NoError(t, err)
		require.NoError(t, d.Execute())
		want = append(want, d)
	}
	w, err := NewWithdrawal(a, dec("15"))
	require.NoError(t, err)
	require.NoError(t, w.Execute())
	want = append(want, w)

	assert.Equal(t, want, a.Transactions())
	assert.True(t, a.Balance().Equal(dec("45")))
}

func TestTransactionIDsUnique(t *testing.T) {
	a := newChecking(t, "C1", "0")
	d1, err := NewDeposit(a, dec("1"))
	require.NoError(t, err)
	d2, err := NewDeposit(a, dec("1"))
	require.NoError(t, err)
	assert.NotEqual(t, d1.ID(), d2.ID())
}

func TestTransactionString(t *testing.T) {
	a := newChecking(t, "C1", "0")
	d, err := NewDeposit(a, dec("7.5"))
	require.NoError(t, err)
	assert.Contains(t, d.String(), "deposit account=C1 amount=7.5")

	w, err := NewWithdrawal(a, dec("2"))
	require.NoError(t, err)
	assert.Contains(t, w.String(), "withdrawal account=C1 amount=2")
}
