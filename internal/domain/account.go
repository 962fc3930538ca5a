package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings AccountType = "savings"
	AccountTypeCurrent AccountType = "current"
)

// DefaultOverdraftLimit is how far a current account may go negative.
var DefaultOverdraftLimit = decimal.NewFromInt(100000)

func ParseAccountType(raw string) (AccountType, error) {
	switch AccountType(strings.ToLower(strings.TrimSpace(raw))) {
	case AccountTypeSavings:
		return AccountTypeSavings, nil
	case AccountTypeCurrent:
		return AccountTypeCurrent, nil
	default:
		return "", ErrInvalidAccountType
	}
}

// OverdraftLimit is the limit an account of this type opens with.
func (t AccountType) OverdraftLimit() decimal.Decimal {
	if t == AccountTypeCurrent {
		return DefaultOverdraftLimit
	}
	return decimal.Zero
}

// CanWithdraw decides whether a withdrawal is permitted. Pure predicate;
// adding an account type means adding a case here and nothing else.
func (t AccountType) CanWithdraw(balance, amount, overdraftLimit decimal.Decimal) bool {
	if t == AccountTypeCurrent {
		return amount.LessThanOrEqual(balance.Add(overdraftLimit))
	}
	return amount.LessThanOrEqual(balance)
}

// DenialError is the failure reported when CanWithdraw returns false.
func (t AccountType) DenialError() error {
	if t == AccountTypeCurrent {
		return ErrOverdraftExceeded
	}
	return ErrInsufficientFunds
}

// AccountRecord is a point-in-time copy of one account, as handed to
// persistence sinks. It carries no mutation capability.
type AccountRecord struct {
	AccountNumber  int64
	Type           AccountType
	Balance        decimal.Decimal
	OverdraftLimit decimal.Decimal
	CustomerID     int64
	OpenedAt       time.Time
}

// AccountSummary is one row of a customer's account listing.
type AccountSummary struct {
	AccountNumber int64
	Balance       decimal.Decimal
}
