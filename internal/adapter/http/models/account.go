package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type OpenAccountRequest struct {
	CustomerID     int64           `json:"customerId"`
	AccountType    string          `json:"accountType"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func (r OpenAccountRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	switch strings.ToLower(strings.TrimSpace(r.AccountType)) {
	case "savings", "current":
	default:
		errs = append(errs, "accountType must be savings or current")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type OpenAccountResponse struct {
	AccountNumber int64  `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance"`
}

type MovementRequest struct {
	CustomerID    int64           `json:"customerId"`
	AccountNumber int64           `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r MovementRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if r.AccountNumber <= 0 {
		errs = append(errs, "accountNumber is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type MovementResponse struct {
	AccountNumber int64  `json:"accountNumber"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`
	Balance       string `json:"balance"`
	EntryID       string `json:"entryId"`
}

type BalanceResponse struct {
	AccountNumber int64  `json:"accountNumber"`
	Balance       string `json:"balance"`
}

type TransactionRecord struct {
	EntryID      string `json:"entryId"`
	Kind         string `json:"kind"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balanceAfter"`
	Details      string `json:"details"`
	Timestamp    string `json:"timestamp"`
}

type TransactionsResponse struct {
	AccountNumber int64               `json:"accountNumber"`
	Transactions  []TransactionRecord `json:"transactions"`
}

type AccountSummaryRecord struct {
	AccountNumber int64  `json:"accountNumber"`
	Balance       string `json:"balance"`
}

type AccountListResponse struct {
	CustomerID int64                  `json:"customerId"`
	Accounts   []AccountSummaryRecord `json:"accounts"`
}
