package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/coop/internal/model"
)

// HistoryHeader is the CSV header for a transaction history export.
const HistoryHeader = "transaction_id,timestamp,kind,account_number,amount"

const (
	historyFields = 5
	colTxID       = 0
	colTimestamp  = 1
	colKind       = 2
	colTxAccount  = 3
	colAmount     = 4
)

// MarshalTransaction converts a transaction to a CSV row. Amounts are written
// exactly, without rounding.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, historyFields)
	row[colTxID] = t.ID()
	row[colTimestamp] = t.Timestamp().Format(time.RFC3339)
	row[colKind] = string(t.Kind())
	row[colTxAccount] = t.Account().Number()
	row[colAmount] = t.Amount().String()
	return row
}

// WriteHistory writes transactions, oldest first, with a header row.
func WriteHistory(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(HistoryHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txs {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportHistory writes transactions to a CSV file at path, creating parent
// directories as needed. An existing file is replaced.
func ExportHistory(path string, txs []model.Transaction) error {
	return exportFile(path, "history", func(w io.Writer) error {
		return WriteHistory(w, txs)
	})
}

// exportFile creates path and its parent directories and fills it with
// write. A failure to close the file fails the export.
func exportFile(path, what string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s export: %w", what, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s export: %w", what, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s export: %w", what, err)
	}
	return nil
}
