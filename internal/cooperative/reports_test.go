package cooperative

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/coop/internal/model"
)

// seeded returns a cooperative with two members and three accounts:
// A1 savings 600000 @ 2%, A2 checking 100, B1 savings 500000 @ 0%.
func seeded(t *testing.T) *Cooperative {
	t.Helper()
	c := newCoop(t)
	_, err := c.RegisterMember("Ana", "111")
	require.NoError(t, err)
	_, err = c.RegisterMember("Bob", "222")
	require.NoError(t, err)

	_, err = c.OpenSavingsAccount("111", "A1", dec("600000"), dec("2"))
	require.NoError(t, err)
	_, err = c.OpenCheckingAccount("111", "A2", dec("100"))
	require.NoError(t, err)
	_, err = c.OpenSavingsAccount("222", "B1", dec("500000"), dec("0"))
	require.NoError(t, err)
	return c
}

func numbers(accts []model.Account) []string {
	out := make([]string, 0, len(accts))
	for _, a := range accts {
		out = append(out, a.Number())
	}
	return out
}

func TestMemberNames(t *testing.T) {
	c := seeded(t)
	assert.Equal(t, []string{"Ana", "Bob"}, slices.Collect(c.MemberNames()))
}

func TestMemberNames_Lazy(t *testing.T) {
	c := seeded(t)
	var got []string
	for name := range c.MemberNames() {
		got = append(got, name)
		break
	}
	assert.Equal(t, []string{"Ana"}, got)
}

func TestMemberNames_Empty(t *testing.T) {
	c := newCoop(t)
	assert.Empty(t, slices.Collect(c.MemberNames()))
}

func TestAccounts_OpeningOrder(t *testing.T) {
	c := seeded(t)
	assert.Equal(t, []string{"A1", "A2", "B1"}, numbers(c.Accounts()))
}

func TestAccountsAbove(t *testing.T) {
	c := seeded(t)

	tests := []struct {
		threshold string
		want      []string
	}{
		{"500000", []string{"A1"}},
		{"499999.99", []string{"A1", "B1"}},
		{"0", []string{"A1", "A2", "B1"}},
		{"600000", nil},
	}
	for _, tt := range tests {
		got, err := c.AccountsAbove(dec(tt.threshold))
		require.NoError(t, err)
		if tt.want == nil {
			assert.Empty(t, got, "threshold %s", tt.threshold)
			continue
		}
		assert.Equal(t, tt.want, numbers(got), "threshold %s", tt.threshold)
	}
}

func TestAccountsAbove_NegativeThreshold(t *testing.T) {
	c := seeded(t)
	_, err := c.AccountsAbove(dec("-0.01"))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestTotalBalance(t *testing.T) {
	c := seeded(t)
	assert.True(t, c.TotalBalance().Equal(dec("1100100")), "got %s", c.TotalBalance())
}

func TestApplyAnnualInterest(t *testing.T) {
	c := seeded(t)

	total, err := c.ApplyAnnualInterest()
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("12000")))

	a1, err := c.FindAccountByNumber("A1")
	require.NoError(t, err)
	assert.True(t, a1.Balance().Equal(dec("612000")))

	a2, err := c.FindAccountByNumber("A2")
	require.NoError(t, err)
	assert.True(t, a2.Balance().Equal(dec("100")), "checking accounts earn nothing")

	b1, err := c.FindAccountByNumber("B1")
	require.NoError(t, err)
	assert.True(t, b1.Balance().Equal(dec("500000")))

	assert.Empty(t, c.History())
}

func TestApplyAnnualInterest_Compounds(t *testing.T) {
	c := seeded(t)
	_, err := c.ApplyAnnualInterest()
	require.NoError(t, err)
	total, err := c.ApplyAnnualInterest()
	require.NoError(t, err)

	// Second year: 612000 * 2 / 100.
	assert.True(t, total.Equal(dec("12240")))
	assert.True(t, c.TotalBalance().Equal(dec("1124340")))
}

func TestHistory_ReturnsCopy(t *testing.T) {
	c := seeded(t)
	_, err := c.Deposit("A2", dec("1"))
	require.NoError(t, err)

	h := c.History()
	h[0] = nil
	assert.NotNil(t, c.History()[0])
}
