package csvexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/api-sage/retail-bank-ledger/internal/domain"
	"github.com/api-sage/retail-bank-ledger/internal/logger"
)

// Exporter writes full ledger snapshots as three CSV files in dir:
// customers.csv, accounts.csv and transactions.csv. Each export rewrites
// the files completely, so the directory always holds one consistent
// snapshot.
type Exporter struct {
	dir string
}

func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

func (e *Exporter) Name() string { return "csv" }

func (e *Exporter) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	if err := e.writeCustomers(snap.Customers); err != nil {
		return err
	}
	if err := e.writeAccounts(snap.Accounts); err != nil {
		return err
	}
	if err := e.writeTransactions(snap.Entries); err != nil {
		return err
	}

	logger.Info("csv exporter snapshot saved", logger.Fields{
		"dir":       e.dir,
		"customers": len(snap.Customers),
		"accounts":  len(snap.Accounts),
		"entries":   len(snap.Entries),
	})
	return nil
}

func (e *Exporter) writeCustomers(customers []domain.Customer) error {
	rows := [][]string{{"ID", "Name", "Email", "Phone", "PasswordHash"}}
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			c.Phone,
			c.PasswordHash,
		})
	}
	return e.writeFile("customers.csv", rows)
}

func (e *Exporter) writeAccounts(accounts []domain.AccountRecord) error {
	rows := [][]string{{"AccountNo", "Balance", "Type", "CustomerID"}}
	for _, a := range accounts {
		rows = append(rows, []string{
			strconv.FormatInt(a.AccountNumber, 10),
			a.Balance.StringFixed(2),
			string(a.Type),
			strconv.FormatInt(a.CustomerID, 10),
		})
	}
	return e.writeFile("accounts.csv", rows)
}

func (e *Exporter) writeTransactions(entries []domain.AccountEntry) error {
	rows := [][]string{{"AccountNo", "Type", "Amount", "BalanceAfter", "Details", "Timestamp"}}
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(entry.AccountNumber, 10),
			string(entry.Kind),
			entry.Amount.StringFixed(2),
			entry.BalanceAfter.StringFixed(2),
			entry.Details(),
			entry.Timestamp.Format(time.RFC3339),
		})
	}
	return e.writeFile("transactions.csv", rows)
}

func (e *Exporter) writeFile(name string, rows [][]string) error {
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
