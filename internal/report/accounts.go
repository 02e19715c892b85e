package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/coop/internal/model"
)

// AccountsHeader is the CSV header for an account listing.
const AccountsHeader = "account_number,account_type,balance,annual_rate,opened_at,transactions"

const (
	accountFields = 6
	colNumber     = 0
	colType       = 1
	colBalance    = 2
	colRate       = 3
	colOpenedAt   = 4
	colTxCount    = 5
)

// MarshalAccount converts an account to a CSV row. The rate column is empty
// for accounts that do not bear interest.
func MarshalAccount(a model.Account) []string {
	row := make([]string, accountFields)
	row[colNumber] = a.Number()
	row[colType] = string(a.Type())
	row[colBalance] = a.Balance().String()
	if ib, ok := a.(model.InterestBearing); ok {
		row[colRate] = ib.AnnualRate().String()
	}
	row[colOpenedAt] = a.OpenedAt().Format(time.RFC3339)
	row[colTxCount] = strconv.Itoa(len(a.Transactions()))
	return row
}

// WriteAccounts writes an account listing with a header row.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(AccountsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range accounts {
		if err := cw.Write(MarshalAccount(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportAccounts writes an account listing to a CSV file at path, creating
// parent directories as needed. An existing file is replaced.
func ExportAccounts(path string, accounts []model.Account) error {
	return exportFile(path, "accounts", func(w io.Writer) error {
		return WriteAccounts(w, accounts)
	})
}
