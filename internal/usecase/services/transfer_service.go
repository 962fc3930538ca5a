package services

import (
	"context"

	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-ledger/internal/commons"
	"github.com/api-sage/retail-bank-ledger/internal/ledger"
	"github.com/api-sage/retail-bank-ledger/internal/logger"
)

type TransferService struct {
	engine *ledger.Engine
	sinks  []SnapshotSink
}

func NewTransferService(engine *ledger.Engine, sinks []SnapshotSink) *TransferService {
	return &TransferService{engine: engine, sinks: sinks}
}

func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service transfer validation failed", err, nil)
		return commons.FailureResponse[models.TransferResponse]("validation failed", err)
	}

	out, in, err := s.engine.Transfer(req.CustomerID, req.FromAccount, req.ToAccount, req.Amount)
	if err != nil {
		logger.Error("transfer service transfer failed", err, logger.Fields{
			"customerId":  req.CustomerID,
			"fromAccount": req.FromAccount,
			"toAccount":   req.ToAccount,
		})
		return commons.FailureResponse[models.TransferResponse](failureMessage(err), err)
	}

	pushSnapshots(ctx, s.engine, s.sinks)

	response := models.TransferResponse{
		Reference:   out.ID.String(),
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      req.Amount.StringFixed(2),
		FromBalance: out.BalanceAfter.StringFixed(2),
		ToBalance:   in.BalanceAfter.StringFixed(2),
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"reference":   response.Reference,
		"fromAccount": response.FromAccount,
		"toAccount":   response.ToAccount,
	})

	return commons.SuccessResponse("transfer successful", response), nil
}
