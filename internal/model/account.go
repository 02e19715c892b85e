package model

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType tags the account variant.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// Account is a numbered balance with an append-only transaction history.
// Deposit and Withdraw only move the balance; recording is left to the
// Transaction that drives them.
type Account interface {
	Number() string
	Type() AccountType
	Balance() decimal.Decimal
	OpenedAt() time.Time
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	RecordTransaction(t Transaction)
	Transactions() []Transaction

	base() *ledger
}

// InterestBearing is implemented by accounts that accrue annual interest.
type InterestBearing interface {
	Account
	AnnualRate() decimal.Decimal
	AccrueAnnualInterest() (decimal.Decimal, error)
}

// ledger is the state shared by every account variant. mu guards the
// balance and history together.
type ledger struct {
	mu       sync.Mutex
	number   string
	balance  decimal.Decimal
	openedAt time.Time
	history  []Transaction
}

func (l *ledger) init(number string, initial decimal.Decimal, openedAt time.Time) error {
	if number == "" {
		return fmt.Errorf("%w: account number is empty", ErrInvalidArgument)
	}
	if err := requireNonNegative("initial balance", initial); err != nil {
		return err
	}
	if openedAt.IsZero() {
		openedAt = time.Now()
	}
	l.number = number
	l.balance = initial
	l.openedAt = openedAt
	return nil
}

// CheckAccount reports ErrInvalidArgument for a nil account, including a
// typed nil such as (*SavingsAccount)(nil).
func CheckAccount(a Account) error {
	if a == nil || a.base() == nil {
		return fmt.Errorf("%w: account is nil", ErrInvalidArgument)
	}
	return nil
}

// Number returns the cooperative-wide account number.
func (l *ledger) Number() string { return l.number }

// OpenedAt returns when the account was opened.
func (l *ledger) OpenedAt() time.Time { return l.openedAt }

// Balance returns the current balance.
func (l *ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Deposit adds a positive amount to the balance.
func (l *ledger) Deposit(amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deposit(amount)
}

// Withdraw removes a positive amount no greater than the balance.
func (l *ledger) Withdraw(amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.withdraw(amount)
}

// RecordTransaction appends t to the history. A nil t is ignored.
func (l *ledger) RecordTransaction(t Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(t)
}

// Transactions returns a copy of the history, oldest first.
func (l *ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Transaction, len(l.history))
	copy(out, l.history)
	return out
}

// The lower-case variants expect mu to be held.

func (l *ledger) deposit(amount decimal.Decimal) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	l.balance = l.balance.Add(amount)
	return nil
}

func (l *ledger) withdraw(amount decimal.Decimal) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	if amount.GreaterThan(l.balance) {
		return fmt.Errorf("%w: account %s has %s, requested %s", ErrInsufficientBalance, l.number, l.balance, amount)
	}
	l.balance = l.balance.Sub(amount)
	return nil
}

func (l *ledger) record(t Transaction) {
	if t == nil {
		return
	}
	l.history = append(l.history, t)
}

// CheckingAccount is the plain account variant.
type CheckingAccount struct {
	ledger
}

// NewCheckingAccount opens a checking account. A zero openedAt means now.
func NewCheckingAccount(number string, initial decimal.Decimal, openedAt time.Time) (*CheckingAccount, error) {
	a := &CheckingAccount{}
	if err := a.init(number, initial, openedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *CheckingAccount) base() *ledger {
	if a == nil {
		return nil
	}
	return &a.ledger
}

// Type returns AccountTypeChecking.
func (a *CheckingAccount) Type() AccountType { return AccountTypeChecking }

func (a *CheckingAccount) String() string {
	return fmt.Sprintf("%s [%s] balance=%s opened=%s",
		a.Number(), a.Type(), a.Balance(), a.OpenedAt().Format(time.DateTime))
}

// SavingsAccount accrues interest at a fixed annual percentage rate.
type SavingsAccount struct {
	ledger
	rate decimal.Decimal
}

// NewSavingsAccount opens a savings account. rate is a percentage, so 1.5
// means 1.5% a year.
func NewSavingsAccount(number string, initial decimal.Decimal, openedAt time.Time, rate decimal.Decimal) (*SavingsAccount, error) {
	if err := requireNonNegative("annual interest rate", rate); err != nil {
		return nil, err
	}
	a := &SavingsAccount{rate: rate}
	if err := a.init(number, initial, openedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *SavingsAccount) base() *ledger {
	if a == nil {
		return nil
	}
	return &a.ledger
}

// Type returns AccountTypeSavings.
func (a *SavingsAccount) Type() AccountType { return AccountTypeSavings }

// AnnualRate returns the annual interest rate as a percentage.
func (a *SavingsAccount) AnnualRate() decimal.Decimal { return a.rate }

// AccrueAnnualInterest deposits one year of interest on the current balance
// and returns the amount deposited. Zero interest leaves the balance alone.
func (a *SavingsAccount) AccrueAnnualInterest() (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	interest := Interest(a.balance, a.rate)
	if interest.IsZero() {
		return decimal.Zero, nil
	}
	if err := a.deposit(interest); err != nil {
		return decimal.Zero, fmt.Errorf("accruing interest on %s: %w", a.number, err)
	}
	return interest, nil
}

func (a *SavingsAccount) String() string {
	return fmt.Sprintf("%s [%s] balance=%s rate=%s%% opened=%s",
		a.Number(), a.Type(), a.Balance(), a.rate, a.OpenedAt().Format(time.DateTime))
}
