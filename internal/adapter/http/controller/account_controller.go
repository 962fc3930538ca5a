package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-ledger/internal/commons"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.OpenAccountResponse], error)
	Deposit(ctx context.Context, req models.MovementRequest) (commons.Response[models.MovementResponse], error)
	Withdraw(ctx context.Context, req models.MovementRequest) (commons.Response[models.MovementResponse], error)
	Balance(ctx context.Context, customerID, accountNumber int64) (commons.Response[models.BalanceResponse], error)
	Transactions(ctx context.Context, customerID, accountNumber int64) (commons.Response[models.TransactionsResponse], error)
	ListAccounts(ctx context.Context, customerID int64) (commons.Response[models.AccountListResponse], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}
	mux.Handle("/accounts", wrap(c.accounts))
	mux.Handle("/accounts/deposit", wrap(c.deposit))
	mux.Handle("/accounts/withdraw", wrap(c.withdraw))
	mux.Handle("/accounts/balance", wrap(c.balance))
	mux.Handle("/accounts/transactions", wrap(c.transactions))
}

// accounts handles POST (open account) and GET (list the customer's
// accounts) on the same path.
func (c *AccountController) accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.open(w, r)
	case http.MethodGet:
		c.list(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.OpenAccountResponse]("method not allowed"))
	}
}

func (c *AccountController) open(w http.ResponseWriter, r *http.Request) {
	var req models.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OpenAccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.OpenAccount(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) list(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	customerID, err := queryInt64(r, "customerId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountListResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.ListAccounts(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	c.movement(w, r, c.service.Deposit)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.movement(w, r, c.service.Withdraw)
}

func (c *AccountController) movement(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, req models.MovementRequest) (commons.Response[models.MovementResponse], error),
) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.MovementResponse]("method not allowed"))
		return
	}

	var req models.MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.MovementResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := apply(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.BalanceResponse]("method not allowed"))
		return
	}
	logRequest(r, nil)

	customerID, err := queryInt64(r, "customerId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BalanceResponse]("validation failed", err.Error()))
		return
	}
	accountNumber, err := queryInt64(r, "accountNumber")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BalanceResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.Balance(r.Context(), customerID, accountNumber)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionsResponse]("method not allowed"))
		return
	}
	logRequest(r, nil)

	customerID, err := queryInt64(r, "customerId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionsResponse]("validation failed", err.Error()))
		return
	}
	accountNumber, err := queryInt64(r, "accountNumber")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionsResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.Transactions(r.Context(), customerID, accountNumber)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func queryInt64(r *http.Request, key string) (int64, error) {
	value, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}
