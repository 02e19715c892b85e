package cooperative

import "fmt"

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	Subject     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.Subject, e.Description)
}

// Validate checks the cross-entity invariants of the whole cooperative and
// returns every violation found. A consistent cooperative returns none.
func (c *Cooperative) Validate() []ValidationError {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var errs []ValidationError

	// Invariant 1: member indices agree.
	for id, m := range c.members {
		if m.ID != id {
			errs = append(errs, ValidationError{
				Invariant:   1,
				Subject:     m.ExternalID,
				Description: fmt.Sprintf("indexed under %s but has id %s", id, m.ID),
			})
		}
		if c.byExternalID[m.ExternalID] != m {
			errs = append(errs, ValidationError{
				Invariant:   1,
				Subject:     m.ExternalID,
				Description: "not reachable by external id",
			})
		}
	}
	if len(c.byExternalID) != len(c.members) {
		errs = append(errs, ValidationError{
			Invariant:   1,
			Subject:     "members",
			Description: fmt.Sprintf("%d external ids for %d members", len(c.byExternalID), len(c.members)),
		})
	}

	// Invariant 2: every member-held account is the indexed instance, and
	// no account is held by two members.
	holders := make(map[string]int)
	for _, m := range c.memberOrder {
		for _, a := range m.Accounts() {
			holders[a.Number()]++
			if indexed, ok := c.accounts[a.Number()]; !ok || indexed != a {
				errs = append(errs, ValidationError{
					Invariant:   2,
					Subject:     a.Number(),
					Description: fmt.Sprintf("held by member %s but not indexed by the cooperative", m.ExternalID),
				})
			}
		}
	}

	// Invariant 3: every indexed account is held by exactly one member.
	for number := range c.accounts {
		if n := holders[number]; n != 1 {
			errs = append(errs, ValidationError{
				Invariant:   3,
				Subject:     number,
				Description: fmt.Sprintf("held by %d members, want 1", n),
			})
		}
	}

	// Invariant 4: balances are never negative.
	for _, a := range c.accountOrder {
		if a.Balance().IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   4,
				Subject:     a.Number(),
				Description: fmt.Sprintf("negative balance %s", a.Balance()),
			})
		}
	}

	// Invariant 5: every global history entry was recorded by its account.
	recorded := make(map[string]bool)
	for _, a := range c.accountOrder {
		for _, t := range a.Transactions() {
			recorded[t.ID()] = true
		}
	}
	for _, t := range c.history {
		if !recorded[t.ID()] {
			errs = append(errs, ValidationError{
				Invariant:   5,
				Subject:     t.ID(),
				Description: fmt.Sprintf("%s on %s missing from the account history", t.Kind(), t.Account().Number()),
			})
		}
	}

	return errs
}
