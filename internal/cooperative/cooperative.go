// Package cooperative holds the root aggregate of the ledger: the member and
// account registries and the global transaction history.
package cooperative

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/coop/internal/model"
)

// Cooperative owns every member, every account and the global history.
// Accounts are shared by reference between the owning member and the
// cooperative-wide index.
type Cooperative struct {
	name    string
	address string
	log     *slog.Logger
	now     func() time.Time

	mu           sync.RWMutex
	members      map[string]*model.Member // by internal id
	byExternalID map[string]*model.Member
	memberOrder  []*model.Member
	accounts     map[string]model.Account
	accountOrder []model.Account
	history      []model.Transaction
}

// Option configures a Cooperative.
type Option func(*Cooperative)

// WithLogger sets the logger used for registry and transaction events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cooperative) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the clock used to stamp newly opened accounts.
func WithClock(now func() time.Time) Option {
	return func(c *Cooperative) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cooperative.
func New(name, address string, opts ...Option) (*Cooperative, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: cooperative name is empty", model.ErrInvalidArgument)
	}
	if address == "" {
		return nil, fmt.Errorf("%w: cooperative address is empty", model.ErrInvalidArgument)
	}
	c := &Cooperative{
		name:         name,
		address:      address,
		log:          slog.New(slog.DiscardHandler),
		now:          time.Now,
		members:      make(map[string]*model.Member),
		byExternalID: make(map[string]*model.Member),
		accounts:     make(map[string]model.Account),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the cooperative name.
func (c *Cooperative) Name() string { return c.name }

// Address returns the cooperative address.
func (c *Cooperative) Address() string { return c.address }

// RegisterMember creates a member with a fresh internal id and registers it.
func (c *Cooperative) RegisterMember(name, externalID string) (*model.Member, error) {
	m, err := model.NewMember(name, externalID)
	if err != nil {
		return nil, err
	}
	if err := c.AddMember(m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddMember registers an already built member. Both the internal and the
// external id must be new to the cooperative.
func (c *Cooperative) AddMember(m *model.Member) error {
	if m == nil {
		return fmt.Errorf("%w: member is nil", model.ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.members[m.ID]; ok {
		return fmt.Errorf("%w: internal id %s", model.ErrDuplicateMember, m.ID)
	}
	if _, ok := c.byExternalID[m.ExternalID]; ok {
		return fmt.Errorf("%w: external id %s", model.ErrDuplicateMember, m.ExternalID)
	}
	c.members[m.ID] = m
	c.byExternalID[m.ExternalID] = m
	c.memberOrder = append(c.memberOrder, m)

	c.log.Info("member registered", "member_id", m.ID, "external_id", m.ExternalID)
	return nil
}

// FindMemberByExternalID returns the member registered under externalID.
func (c *Cooperative) FindMemberByExternalID(externalID string) (*model.Member, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memberLocked(externalID)
}

func (c *Cooperative) memberLocked(externalID string) (*model.Member, error) {
	m, ok := c.byExternalID[externalID]
	if !ok {
		return nil, fmt.Errorf("%w: external id %q", model.ErrMemberNotFound, externalID)
	}
	return m, nil
}

// OpenAccount attaches account to the member with externalID and indexes it.
// The number must be unused both cooperative-wide and within the member.
// On error nothing is registered.
func (c *Cooperative) OpenAccount(externalID string, account model.Account) error {
	if err := model.CheckAccount(account); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.memberLocked(externalID)
	if err != nil {
		return err
	}
	number := account.Number()
	if _, ok := c.accounts[number]; ok {
		return fmt.Errorf("%w: %s is already open in the cooperative", model.ErrDuplicateAccount, number)
	}
	if _, ok := m.FindAccount(number); ok {
		return fmt.Errorf("%w: %s is already held by member %s", model.ErrDuplicateAccount, number, externalID)
	}
	if err := m.AddAccount(account); err != nil {
		return err
	}
	c.accounts[number] = account
	c.accountOrder = append(c.accountOrder, account)

	c.log.Info("account opened", "account", number, "type", account.Type(), "external_id", externalID, "balance", account.Balance())
	return nil
}

// OpenSavingsAccount creates a savings account and opens it for the member.
func (c *Cooperative) OpenSavingsAccount(externalID, number string, initial, annualRate decimal.Decimal) (*model.SavingsAccount, error) {
	a, err := model.NewSavingsAccount(number, initial, c.now(), annualRate)
	if err != nil {
		return nil, err
	}
	if err := c.OpenAccount(externalID, a); err != nil {
		return nil, err
	}
	return a, nil
}

// OpenCheckingAccount creates a checking account and opens it for the member.
func (c *Cooperative) OpenCheckingAccount(externalID, number string, initial decimal.Decimal) (*model.CheckingAccount, error) {
	a, err := model.NewCheckingAccount(number, initial, c.now())
	if err != nil {
		return nil, err
	}
	if err := c.OpenAccount(externalID, a); err != nil {
		return nil, err
	}
	return a, nil
}

// FindAccountByNumber returns the account with the given number.
func (c *Cooperative) FindAccountByNumber(number string) (model.Account, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: account number is empty", model.ErrInvalidArgument)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrAccountNotFound, number)
	}
	return a, nil
}

// Execute runs t and appends it to the global history only if it succeeded.
// The account history is updated by t itself under the same condition, so a
// failed transaction leaves no trace in either history.
func (c *Cooperative) Execute(t model.Transaction) error {
	if t == nil {
		return fmt.Errorf("%w: transaction is nil", model.ErrInvalidArgument)
	}
	if err := model.CheckAccount(t.Account()); err != nil {
		return err
	}
	number := t.Account().Number()

	c.mu.RLock()
	indexed, ok := c.accounts[number]
	c.mu.RUnlock()
	if !ok || indexed != t.Account() {
		return fmt.Errorf("%w: %q is not open in this cooperative", model.ErrAccountNotFound, number)
	}

	if err := t.Execute(); err != nil {
		c.log.Info("transaction rejected", "id", t.ID(), "kind", t.Kind(), "account", number, "amount", t.Amount(), "error", err)
		return fmt.Errorf("%s on %s: %w", t.Kind(), number, err)
	}

	c.mu.Lock()
	c.history = append(c.history, t)
	c.mu.Unlock()

	c.log.Debug("transaction executed", "id", t.ID(), "kind", t.Kind(), "account", number, "amount", t.Amount())
	return nil
}

// Deposit looks up the account, then builds and executes a deposit.
func (c *Cooperative) Deposit(number string, amount decimal.Decimal) (model.Transaction, error) {
	a, err := c.FindAccountByNumber(number)
	if err != nil {
		return nil, err
	}
	d, err := model.NewDeposit(a, amount)
	if err != nil {
		return nil, err
	}
	if err := c.Execute(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Withdraw looks up the account, then builds and executes a withdrawal.
func (c *Cooperative) Withdraw(number string, amount decimal.Decimal) (model.Transaction, error) {
	a, err := c.FindAccountByNumber(number)
	if err != nil {
		return nil, err
	}
	w, err := model.NewWithdrawal(a, amount)
	if err != nil {
		return nil, err
	}
	if err := c.Execute(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (c *Cooperative) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("%s (%s): %d members, %d accounts, %d transactions",
		c.name, c.address, len(c.memberOrder), len(c.accountOrder), len(c.history))
}
