package services

import (
	"context"
	"errors"

	"github.com/api-sage/retail-bank-ledger/internal/domain"
	"github.com/api-sage/retail-bank-ledger/internal/ledger"
	"github.com/api-sage/retail-bank-ledger/internal/logger"
)

// SnapshotSink receives complete ledger snapshots for durable storage.
// Sinks are best-effort: a failing sink is logged, never surfaced to the
// caller of the mutating operation.
type SnapshotSink interface {
	Name() string
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error
}

func pushSnapshots(ctx context.Context, engine *ledger.Engine, sinks []SnapshotSink) {
	if len(sinks) == 0 {
		return
	}

	snap := engine.Snapshot()
	for _, sink := range sinks {
		if err := sink.SaveSnapshot(ctx, snap); err != nil {
			logger.Error("snapshot sink save failed", err, logger.Fields{
				"sink": sink.Name(),
			})
		}
	}
}

// failureMessage maps a domain error to the response envelope message.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrSameAccount):
		return "validation failed"
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicatePhone):
		return "registration failed"
	case errors.Is(err, domain.ErrUnknownEmail),
		errors.Is(err, domain.ErrBadCredential):
		return "login failed"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "customer not found"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account not found"
	case errors.Is(err, domain.ErrTargetNotFound):
		return "target account not found"
	case errors.Is(err, domain.ErrNotOwner):
		return "account does not belong to customer"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient balance"
	case errors.Is(err, domain.ErrOverdraftExceeded):
		return "overdraft limit exceeded"
	default:
		return "internal error"
	}
}
