package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/coop/internal/id"
)

// TransactionKind names a transaction variant.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

// Transaction is one balance change against one account. The variants are
// Deposit and Withdrawal; new variants are added in this package.
type Transaction interface {
	ID() string
	Kind() TransactionKind
	Account() Account
	Amount() decimal.Decimal
	Timestamp() time.Time
	// Execute applies the change and, only if it succeeds, records the
	// transaction in the account history.
	Execute() error

	isTransaction()
}

// entry holds the fields common to every transaction variant.
type entry struct {
	id        string
	account   Account
	amount    decimal.Decimal
	timestamp time.Time
	executed  bool // guarded by the account lock
}

func newEntry(account Account, amount decimal.Decimal) (entry, error) {
	if err := CheckAccount(account); err != nil {
		return entry{}, err
	}
	if err := requirePositive(amount); err != nil {
		return entry{}, err
	}
	return entry{
		id:        id.NewTransactionID(),
		account:   account,
		amount:    amount,
		timestamp: time.Now(),
	}, nil
}

func (e *entry) ID() string              { return e.id }
func (e *entry) Account() Account        { return e.account }
func (e *entry) Amount() decimal.Decimal { return e.amount }
func (e *entry) Timestamp() time.Time    { return e.timestamp }
func (e *entry) isTransaction()          {}

func (e *entry) format(kind TransactionKind) string {
	return fmt.Sprintf("%s %s account=%s amount=%s at=%s",
		id.Short(e.id), kind, e.account.Number(), e.amount, e.timestamp.Format(time.DateTime))
}

// apply runs op and records t under the account lock, so the balance change
// and the history append happen together or not at all. A transaction runs
// successfully at most once; a failed one may be retried.
func apply(t Transaction, e *entry, op func(*ledger, decimal.Decimal) error) error {
	if err := CheckAccount(e.account); err != nil {
		return err
	}
	l := e.account.base()
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.executed {
		return fmt.Errorf("%w: transaction %s was already executed", ErrInvalidArgument, id.Short(e.id))
	}
	if err := op(l, e.amount); err != nil {
		return err
	}
	l.record(t)
	e.executed = true
	return nil
}

// Deposit credits an account.
type Deposit struct {
	entry
}

// NewDeposit builds an unexecuted deposit of a positive amount.
func NewDeposit(account Account, amount decimal.Decimal) (*Deposit, error) {
	e, err := newEntry(account, amount)
	if err != nil {
		return nil, err
	}
	return &Deposit{entry: e}, nil
}

// Kind returns KindDeposit.
func (d *Deposit) Kind() TransactionKind { return KindDeposit }

// Execute deposits the amount and records d in the account history.
func (d *Deposit) Execute() error {
	return apply(d, &d.entry, (*ledger).deposit)
}

func (d *Deposit) String() string { return d.format(KindDeposit) }

// Withdrawal debits an account.
type Withdrawal struct {
	entry
}

// NewWithdrawal builds an unexecuted withdrawal of a positive amount.
func NewWithdrawal(account Account, amount decimal.Decimal) (*Withdrawal, error) {
	e, err := newEntry(account, amount)
	if err != nil {
		return nil, err
	}
	return &Withdrawal{entry: e}, nil
}

// Kind returns KindWithdrawal.
func (w *Withdrawal) Kind() TransactionKind { return KindWithdrawal }

// Execute withdraws the amount and records w in the account history.
// An insufficient balance leaves both balance and history untouched.
func (w *Withdrawal) Execute() error {
	return apply(w, &w.entry, (*ledger).withdraw)
}

func (w *Withdrawal) String() string { return w.format(KindWithdrawal) }
