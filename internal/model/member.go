package model

import (
	"fmt"
	"sync"

	"github.com/cleared-dev/coop/internal/id"
)

// Member is a person registered with the cooperative. ExternalID is the
// card or national id used for lookups; ID is generated internally.
type Member struct {
	ID         string
	ExternalID string
	Name       string

	mu       sync.Mutex
	accounts []Account
}

// NewMember builds a member with a fresh internal id.
func NewMember(name, externalID string) (*Member, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: member name is empty", ErrInvalidArgument)
	}
	if externalID == "" {
		return nil, fmt.Errorf("%w: member external id is empty", ErrInvalidArgument)
	}
	return &Member{
		ID:         id.NewMemberID(),
		ExternalID: externalID,
		Name:       name,
	}, nil
}

// AddAccount appends an account unless one with the same number is already held.
func (m *Member) AddAccount(account Account) error {
	if err := CheckAccount(account); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findLocked(account.Number()); ok {
		return fmt.Errorf("%w: member %s already holds %s", ErrDuplicateAccount, m.ExternalID, account.Number())
	}
	m.accounts = append(m.accounts, account)
	return nil
}

// FindAccount returns the member's account with the given number.
func (m *Member) FindAccount(number string) (Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(number)
}

// Accounts returns the member's accounts in the order they were added.
func (m *Member) Accounts() []Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Account, len(m.accounts))
	copy(out, m.accounts)
	return out
}

func (m *Member) findLocked(number string) (Account, bool) {
	for _, a := range m.accounts {
		if a.Number() == number {
			return a, true
		}
	}
	return nil, false
}

func (m *Member) String() string {
	return fmt.Sprintf("%s (%s) id=%s accounts=%d", m.Name, m.ExternalID, id.Short(m.ID), len(m.Accounts()))
}
