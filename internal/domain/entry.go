package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	EntryKindDeposit  EntryKind = "Deposit"
	EntryKindWithdraw EntryKind = "Withdraw"
)

// LedgerEntry is one immutable, append-only record of a balance change.
// Counterparty is the other account of a transfer, 0 when the movement was
// a plain deposit or withdrawal.
type LedgerEntry struct {
	ID           uuid.UUID       `json:"id"`
	Kind         EntryKind       `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Counterparty int64           `json:"counterparty,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// Signed returns the entry amount with its direction applied: deposits
// positive, withdrawals negative.
func (e LedgerEntry) Signed() decimal.Decimal {
	if e.Kind == EntryKindWithdraw {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Details renders the entry's narrative text for statements and exports.
func (e LedgerEntry) Details() string {
	switch {
	case e.Kind == EntryKindDeposit && e.Counterparty != 0:
		return fmt.Sprintf("Received From %d", e.Counterparty)
	case e.Kind == EntryKindDeposit:
		return "Self Deposit"
	case e.Counterparty != 0:
		return fmt.Sprintf("Transferred to %d", e.Counterparty)
	default:
		return "Self Withdrawn"
	}
}
