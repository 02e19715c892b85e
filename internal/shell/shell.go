// Package shell runs the interactive cooperative menu over a pair of
// streams.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/coop/internal/config"
	"github.com/cleared-dev/coop/internal/cooperative"
	"github.com/cleared-dev/coop/internal/model"
	"github.com/cleared-dev/coop/internal/report"
)

// Default export paths, used when the export prompt is left blank.
const (
	DefaultExportPath         = "history.csv"
	DefaultAccountsExportPath = "accounts.csv"
)

// Shell is one interactive session against a cooperative.
type Shell struct {
	coop *cooperative.Cooperative
	cfg  *config.Config
	in   *bufio.Scanner
	out  io.Writer
}

// New creates a Shell reading commands from in and writing to out.
func New(coop *cooperative.Cooperative, cfg *config.Config, in io.Reader, out io.Writer) *Shell {
	return &Shell{coop: coop, cfg: cfg, in: bufio.NewScanner(in), out: out}
}

// Run shows the menu until the user exits or input ends. Errors from menu
// actions are printed and the loop continues; only I/O failures are returned.
func (s *Shell) Run() error {
	for {
		s.menu()
		choice, err := s.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "0" {
			s.printf("Goodbye!\n")
			return nil
		}

		if err := s.dispatch(choice); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.printf("Error: %v\n", err)
		}

		s.printf("\nPress ENTER to continue...\n")
		if _, err := s.readLine(); errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
	}
}

func (s *Shell) menu() {
	s.printf("=== %s - %s ===\n", s.coop.Name(), s.coop.Address())
	s.printf("1. Register member\n")
	s.printf("2. Open savings account\n")
	s.printf("3. Deposit\n")
	s.printf("4. Withdraw\n")
	s.printf("5. List member names\n")
	s.printf("6. Accounts with balance > %s\n", s.money(s.cfg.Reports.BalanceThreshold))
	s.printf("7. Total balance\n")
	s.printf("8. Apply annual interest to savings accounts\n")
	s.printf("9. Show global transaction history\n")
	s.printf("10. Export global transaction history (CSV)\n")
	s.printf("11. Export accounts (CSV)\n")
	s.printf("0. Exit\n")
	s.printf("Select: ")
}

func (s *Shell) dispatch(choice string) error {
	switch choice {
	case "1":
		return s.registerMember()
	case "2":
		return s.openSavingsAccount()
	case "3":
		return s.deposit()
	case "4":
		return s.withdraw()
	case "5":
		s.listMemberNames()
	case "6":
		return s.accountsAbove()
	case "7":
		s.printf("\nTotal balance: %s\n", s.money(s.coop.TotalBalance()))
	case "8":
		return s.applyInterest()
	case "9":
		s.showHistory()
	case "10":
		return s.exportHistory()
	case "11":
		return s.exportAccounts()
	case "check":
		s.check()
	default:
		s.printf("Invalid option.\n")
	}
	return nil
}

func (s *Shell) registerMember() error {
	name, err := s.prompt("Name: ")
	if err != nil {
		return err
	}
	externalID, err := s.prompt("External id: ")
	if err != nil {
		return err
	}
	if _, err := s.coop.RegisterMember(name, externalID); err != nil {
		return err
	}
	s.printf("Member registered.\n")
	return nil
}

func (s *Shell) openSavingsAccount() error {
	externalID, err := s.prompt("Member external id: ")
	if err != nil {
		return err
	}
	number, err := s.prompt("Account number: ")
	if err != nil {
		return err
	}
	initial, err := s.promptAmount("Initial balance: ")
	if err != nil {
		return err
	}
	rate, err := s.promptAmount("Annual interest rate (e.g. 1.5 for 1.5%): ")
	if err != nil {
		return err
	}
	if _, err := s.coop.OpenSavingsAccount(externalID, number, initial, rate); err != nil {
		return err
	}
	s.printf("Savings account opened.\n")
	return nil
}

func (s *Shell) deposit() error {
	number, err := s.prompt("Account number: ")
	if err != nil {
		return err
	}
	amount, err := s.promptAmount("Amount to deposit: ")
	if err != nil {
		return err
	}
	t, err := s.coop.Deposit(number, amount)
	if err != nil {
		return err
	}
	s.printf("Deposit completed. Balance: %s\n", s.money(t.Account().Balance()))
	return nil
}

// withdraw reports a refused withdrawal as an outcome, not an error.
func (s *Shell) withdraw() error {
	number, err := s.prompt("Account number: ")
	if err != nil {
		return err
	}
	amount, err := s.promptAmount("Amount to withdraw: ")
	if err != nil {
		return err
	}
	account, err := s.coop.FindAccountByNumber(number)
	if err != nil {
		return err
	}
	w, err := model.NewWithdrawal(account, amount)
	if err != nil {
		return err
	}
	if err := s.coop.Execute(w); err != nil {
		s.printf("Withdrawal failed: %v\n", err)
		return nil
	}
	s.printf("Withdrawal completed. Balance: %s\n", s.money(account.Balance()))
	return nil
}

func (s *Shell) listMemberNames() {
	s.printf("\n * Member names *\n")
	empty := true
	for name := range s.coop.MemberNames() {
		s.printf("%s\n", name)
		empty = false
	}
	if empty {
		s.printf("(no members)\n")
	}
}

func (s *Shell) accountsAbove() error {
	threshold := s.cfg.Reports.BalanceThreshold
	accounts, err := s.coop.AccountsAbove(threshold)
	if err != nil {
		return err
	}
	s.printf("\n * Accounts with balance > %s *\n", s.money(threshold))
	if len(accounts) == 0 {
		s.printf("(no results)\n")
		return nil
	}
	for _, a := range accounts {
		s.printf("%s\n", s.describe(a))
	}
	return nil
}

func (s *Shell) applyInterest() error {
	total, err := s.coop.ApplyAnnualInterest()
	if err != nil {
		return err
	}
	s.printf("Interest applied: %s\n", s.money(total))
	return nil
}

func (s *Shell) showHistory() {
	s.printf("\n * Global transaction history *\n")
	history := s.coop.History()
	if len(history) == 0 {
		s.printf("(no transactions)\n")
		return
	}
	for _, t := range history {
		s.printf("%s  %-10s %-12s %s\n",
			t.Timestamp().Format("2006-01-02 15:04:05"), t.Kind(), t.Account().Number(), s.money(t.Amount()))
	}
}

func (s *Shell) exportHistory() error {
	path, err := s.prompt(fmt.Sprintf("Export path [%s]: ", DefaultExportPath))
	if err != nil {
		return err
	}
	if path == "" {
		path = DefaultExportPath
	}
	history := s.coop.History()
	if err := report.ExportHistory(path, history); err != nil {
		return err
	}
	s.printf("Exported %d transactions to %s\n", len(history), path)
	return nil
}

func (s *Shell) exportAccounts() error {
	path, err := s.prompt(fmt.Sprintf("Export path [%s]: ", DefaultAccountsExportPath))
	if err != nil {
		return err
	}
	if path == "" {
		path = DefaultAccountsExportPath
	}
	accounts := s.coop.Accounts()
	if err := report.ExportAccounts(path, accounts); err != nil {
		return err
	}
	s.printf("Exported %d accounts to %s\n", len(accounts), path)
	return nil
}

func (s *Shell) check() {
	errs := s.coop.Validate()
	if len(errs) == 0 {
		s.printf("Ledger consistent: %s\n", s.coop)
		return
	}
	for _, e := range errs {
		s.printf("%s\n", e.Error())
	}
}

func (s *Shell) describe(a model.Account) string {
	line := fmt.Sprintf("%-12s %-8s %s", a.Number(), a.Type(), s.money(a.Balance()))
	if ib, ok := a.(model.InterestBearing); ok {
		line += fmt.Sprintf("  rate=%s%%", ib.AnnualRate())
	}
	return line
}

func (s *Shell) money(d decimal.Decimal) string {
	return d.StringFixed(s.cfg.Display.DecimalPlaces)
}

func (s *Shell) prompt(label string) (string, error) {
	s.printf("%s", label)
	return s.readLine()
}

func (s *Shell) promptAmount(label string) (decimal.Decimal, error) {
	text, err := s.prompt(label)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ParseAmount(text)
}

func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
