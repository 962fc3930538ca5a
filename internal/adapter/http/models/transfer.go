package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	CustomerID  int64           `json:"customerId"`
	FromAccount int64           `json:"fromAccount"`
	ToAccount   int64           `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if r.FromAccount <= 0 {
		errs = append(errs, "fromAccount is required")
	}
	if r.ToAccount <= 0 {
		errs = append(errs, "toAccount is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	Reference   string `json:"reference"`
	FromAccount int64  `json:"fromAccount"`
	ToAccount   int64  `json:"toAccount"`
	Amount      string `json:"amount"`
	FromBalance string `json:"fromBalance"`
	ToBalance   string `json:"toBalance"`
}
