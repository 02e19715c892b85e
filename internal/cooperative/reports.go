package cooperative

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/coop/internal/model"
)

// MemberNames yields member names in registration order. Members registered
// after the call are not included.
func (c *Cooperative) MemberNames() iter.Seq[string] {
	c.mu.RLock()
	members := c.memberOrder
	c.mu.RUnlock()

	return func(yield func(string) bool) {
		for _, m := range members {
			if !yield(m.Name) {
				return
			}
		}
	}
}

// Members returns all members in registration order.
func (c *Cooperative) Members() []*model.Member {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*model.Member, len(c.memberOrder))
	copy(out, c.memberOrder)
	return out
}

// Accounts returns all accounts in the order they were opened.
func (c *Cooperative) Accounts() []model.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Account, len(c.accountOrder))
	copy(out, c.accountOrder)
	return out
}

// AccountsAbove returns the accounts whose balance is strictly greater than
// threshold.
func (c *Cooperative) AccountsAbove(threshold decimal.Decimal) ([]model.Account, error) {
	if threshold.IsNegative() {
		return nil, fmt.Errorf("%w: threshold must not be negative, got %s", model.ErrInvalidArgument, threshold)
	}
	var result []model.Account
	for _, a := range c.Accounts() {
		if a.Balance().GreaterThan(threshold) {
			result = append(result, a)
		}
	}
	return result, nil
}

// TotalBalance sums the balances of every account.
func (c *Cooperative) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range c.Accounts() {
		total = total.Add(a.Balance())
	}
	return total
}

// History returns the global history of executed transactions, oldest first.
func (c *Cooperative) History() []model.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Transaction, len(c.history))
	copy(out, c.history)
	return out
}

// ApplyAnnualInterest accrues one year of interest on every interest-bearing
// account and returns the total deposited. Accrual moves balances directly;
// it is not recorded in any history.
func (c *Cooperative) ApplyAnnualInterest() (decimal.Decimal, error) {
	total := decimal.Zero
	accrued := 0
	for _, a := range c.Accounts() {
		ib, ok := a.(model.InterestBearing)
		if !ok {
			continue
		}
		interest, err := ib.AccrueAnnualInterest()
		if err != nil {
			return total, err
		}
		total = total.Add(interest)
		accrued++
	}
	c.log.Info("annual interest applied", "accounts", accrued, "total", total)
	return total, nil
}
