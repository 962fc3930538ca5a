package services

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-ledger/internal/commons"
	"github.com/api-sage/retail-bank-ledger/internal/domain"
	"github.com/api-sage/retail-bank-ledger/internal/ledger"
	"github.com/api-sage/retail-bank-ledger/internal/logger"
)

type AccountService struct {
	engine *ledger.Engine
	sinks  []SnapshotSink
}

func NewAccountService(engine *ledger.Engine, sinks []SnapshotSink) *AccountService {
	return &AccountService{engine: engine, sinks: sinks}
}

func (s *AccountService) OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.OpenAccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service open account validation failed", err, nil)
		return commons.FailureResponse[models.OpenAccountResponse]("validation failed", err)
	}

	number, err := s.engine.OpenAccount(req.CustomerID, req.AccountType, req.InitialBalance)
	if err != nil {
		logger.Error("account service open account failed", err, logger.Fields{
			"customerId": req.CustomerID,
		})
		return commons.FailureResponse[models.OpenAccountResponse](failureMessage(err), err)
	}

	pushSnapshots(ctx, s.engine, s.sinks)

	accType, _ := domain.ParseAccountType(req.AccountType)
	response := models.OpenAccountResponse{
		AccountNumber: number,
		AccountType:   string(accType),
		Balance:       req.InitialBalance.StringFixed(2),
	}

	logger.Info("account service open account success", logger.Fields{
		"customerId":    req.CustomerID,
		"accountNumber": response.AccountNumber,
		"accountType":   response.AccountType,
	})

	return commons.SuccessResponse("account opened successfully", response), nil
}

func (s *AccountService) Deposit(ctx context.Context, req models.MovementRequest) (commons.Response[models.MovementResponse], error) {
	logger.Info("account service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service deposit validation failed", err, nil)
		return commons.FailureResponse[models.MovementResponse]("validation failed", err)
	}

	entry, err := s.engine.Deposit(req.CustomerID, req.AccountNumber, req.Amount)
	if err != nil {
		logger.Error("account service deposit failed", err, logger.Fields{
			"customerId":    req.CustomerID,
			"accountNumber": req.AccountNumber,
		})
		return commons.FailureResponse[models.MovementResponse](failureMessage(err), err)
	}

	pushSnapshots(ctx, s.engine, s.sinks)

	response := movementResponse(req.AccountNumber, entry)
	logger.Info("account service deposit success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"entryId":       response.EntryID,
	})

	return commons.SuccessResponse("deposit successful", response), nil
}

func (s *AccountService) Withdraw(ctx context.Context, req models.MovementRequest) (commons.Response[models.MovementResponse], error) {
	logger.Info("account service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service withdraw validation failed", err, nil)
		return commons.FailureResponse[models.MovementResponse]("validation failed", err)
	}

	entry, err := s.engine.Withdraw(req.CustomerID, req.AccountNumber, req.Amount)
	if err != nil {
		logger.Error("account service withdraw failed", err, logger.Fields{
			"customerId":    req.CustomerID,
			"accountNumber": req.AccountNumber,
		})
		return commons.FailureResponse[models.MovementResponse](failureMessage(err), err)
	}

	pushSnapshots(ctx, s.engine, s.sinks)

	response := movementResponse(req.AccountNumber, entry)
	logger.Info("account service withdraw success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"entryId":       response.EntryID,
	})

	return commons.SuccessResponse("withdrawal successful", response), nil
}

func (s *AccountService) Balance(ctx context.Context, customerID, accountNumber int64) (commons.Response[models.BalanceResponse], error) {
	logger.Info("account service balance request", logger.Fields{
		"customerId":    customerID,
		"accountNumber": accountNumber,
	})

	if customerID <= 0 || accountNumber <= 0 {
		err := fmt.Errorf("customerId and accountNumber are required")
		return commons.FailureResponse[models.BalanceResponse]("validation failed", err)
	}

	balance, err := s.engine.BalanceOf(customerID, accountNumber)
	if err != nil {
		logger.Error("account service balance failed", err, logger.Fields{
			"customerId":    customerID,
			"accountNumber": accountNumber,
		})
		return commons.FailureResponse[models.BalanceResponse](failureMessage(err), err)
	}

	response := models.BalanceResponse{
		AccountNumber: accountNumber,
		Balance:       balance.StringFixed(2),
	}
	return commons.SuccessResponse("balance fetched successfully", response), nil
}

func (s *AccountService) Transactions(ctx context.Context, customerID, accountNumber int64) (commons.Response[models.TransactionsResponse], error) {
	logger.Info("account service transactions request", logger.Fields{
		"customerId":    customerID,
		"accountNumber": accountNumber,
	})

	if customerID <= 0 || accountNumber <= 0 {
		err := fmt.Errorf("customerId and accountNumber are required")
		return commons.FailureResponse[models.TransactionsResponse]("validation failed", err)
	}

	entries, err := s.engine.TransactionsOf(customerID, accountNumber)
	if err != nil {
		logger.Error("account service transactions failed", err, logger.Fields{
			"customerId":    customerID,
			"accountNumber": accountNumber,
		})
		return commons.FailureResponse[models.TransactionsResponse](failureMessage(err), err)
	}

	response := models.TransactionsResponse{
		AccountNumber: accountNumber,
		Transactions:  make([]models.TransactionRecord, 0, len(entries)),
	}
	for _, entry := range entries {
		response.Transactions = append(response.Transactions, models.TransactionRecord{
			EntryID:      entry.ID.String(),
			Kind:         string(entry.Kind),
			Amount:       entry.Amount.StringFixed(2),
			BalanceAfter: entry.BalanceAfter.StringFixed(2),
			Details:      entry.Details(),
			Timestamp:    entry.Timestamp.Format(time.RFC3339),
		})
	}

	return commons.SuccessResponse("transactions fetched successfully", response), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, customerID int64) (commons.Response[models.AccountListResponse], error) {
	logger.Info("account service list accounts request", logger.Fields{
		"customerId": customerID,
	})

	if customerID <= 0 {
		err := fmt.Errorf("customerId is required")
		return commons.FailureResponse[models.AccountListResponse]("validation failed", err)
	}

	summaries, err := s.engine.AccountsOf(customerID)
	if err != nil {
		logger.Error("account service list accounts failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.FailureResponse[models.AccountListResponse](failureMessage(err), err)
	}

	response := models.AccountListResponse{
		CustomerID: customerID,
		Accounts:   make([]models.AccountSummaryRecord, 0, len(summaries)),
	}
	for _, summary := range summaries {
		response.Accounts = append(response.Accounts, models.AccountSummaryRecord{
			AccountNumber: summary.AccountNumber,
			Balance:       summary.Balance.StringFixed(2),
		})
	}

	return commons.SuccessResponse("accounts fetched successfully", response), nil
}

func movementResponse(accountNumber int64, entry domain.LedgerEntry) models.MovementResponse {
	return models.MovementResponse{
		AccountNumber: accountNumber,
		Kind:          string(entry.Kind),
		Amount:        entry.Amount.StringFixed(2),
		Balance:       entry.BalanceAfter.StringFixed(2),
		EntryID:       entry.ID.String(),
	}
}
