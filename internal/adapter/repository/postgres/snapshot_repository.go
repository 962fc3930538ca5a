package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/api-sage/retail-bank-ledger/internal/domain"
	"github.com/api-sage/retail-bank-ledger/internal/logger"
)

// SnapshotRepository persists ledger snapshots with insert-style,
// parameterized statements. Customers and accounts are upserted; ledger
// entries are append-only, so an entry that is already stored is skipped.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Name() string { return "postgres" }

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	logger.Info("snapshot repository save", logger.Fields{
		"customers": len(snap.Customers),
		"accounts":  len(snap.Accounts),
		"entries":   len(snap.Entries),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.saveCustomers(ctx, snap.Customers) })
	g.Go(func() error { return r.saveAccounts(ctx, snap.Accounts) })
	g.Go(func() error { return r.saveEntries(ctx, snap.Entries) })

	if err := g.Wait(); err != nil {
		logger.Error("snapshot repository save failed", err, nil)
		return err
	}
	return nil
}

func (r *SnapshotRepository) saveCustomers(ctx context.Context, customers []domain.Customer) error {
	const query = `
INSERT INTO customers (id, name, email, phone, password_hash)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	password_hash = EXCLUDED.password_hash`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin customers tx: %w", err)
	}

	for _, c := range customers {
		if _, err := tx.ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.PasswordHash); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert customer %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customers tx: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) saveAccounts(ctx context.Context, accounts []domain.AccountRecord) error {
	const query = `
INSERT INTO accounts (account_number, account_type, balance, overdraft_limit, customer_id, opened_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (account_number) DO UPDATE SET
	balance = EXCLUDED.balance`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin accounts tx: %w", err)
	}

	for _, a := range accounts {
		if _, err := tx.ExecContext(
			ctx,
			query,
			a.AccountNumber,
			string(a.Type),
			a.Balance.StringFixed(2),
			a.OverdraftLimit.StringFixed(2),
			a.CustomerID,
			a.OpenedAt,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert account %d: %w", a.AccountNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit accounts tx: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) saveEntries(ctx context.Context, entries []domain.AccountEntry) error {
	const query = `
INSERT INTO ledger_entries (id, account_number, kind, amount, balance_after, counterparty, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, entry := range entries {
		var counterparty sql.NullInt64
		if entry.Counterparty != 0 {
			counterparty = sql.NullInt64{Int64: entry.Counterparty, Valid: true}
		}

		_, err := r.db.ExecContext(
			ctx,
			query,
			entry.ID,
			entry.AccountNumber,
			string(entry.Kind),
			entry.Amount.StringFixed(2),
			entry.BalanceAfter.StringFixed(2),
			counterparty,
			entry.Details(),
			entry.Timestamp,
		)
		if err != nil {
			// entries are immutable; one that is already stored is fine
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("insert ledger entry %s: %w", entry.ID, err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
