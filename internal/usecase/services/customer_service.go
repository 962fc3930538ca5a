package services

import (
	"context"
	"strings"

	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-ledger/internal/commons"
	"github.com/api-sage/retail-bank-ledger/internal/ledger"
	"github.com/api-sage/retail-bank-ledger/internal/logger"
)

type CustomerService struct {
	registry *ledger.Registry
}

func NewCustomerService(registry *ledger.Registry) *CustomerService {
	return &CustomerService{registry: registry}
}

func (s *CustomerService) Register(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.RegisterCustomerResponse], error) {
	logger.Info("customer service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("customer service register validation failed", err, nil)
		return commons.FailureResponse[models.RegisterCustomerResponse]("validation failed", err)
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	id, err := s.registry.Register(name, email, phone, req.Password)
	if err != nil {
		logger.Error("customer service register failed", err, logger.Fields{
			"email": email,
		})
		return commons.FailureResponse[models.RegisterCustomerResponse](failureMessage(err), err)
	}

	response := models.RegisterCustomerResponse{
		CustomerID: id,
		Name:       name,
		Email:      email,
	}

	logger.Info("customer service register success", logger.Fields{
		"customerId": response.CustomerID,
		"email":      response.Email,
	})

	return commons.SuccessResponse("customer registered successfully", response), nil
}

func (s *CustomerService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("customer service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("customer service login validation failed", err, nil)
		return commons.FailureResponse[models.LoginResponse]("validation failed", err)
	}

	id, err := s.registry.Authenticate(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		logger.Error("customer service login failed", err, logger.Fields{
			"email": strings.TrimSpace(req.Email),
		})
		return commons.FailureResponse[models.LoginResponse](failureMessage(err), err)
	}

	customer, err := s.registry.Customer(id)
	if err != nil {
		return commons.FailureResponse[models.LoginResponse](failureMessage(err), err)
	}

	response := models.LoginResponse{
		CustomerID: customer.ID,
		Name:       customer.Name,
	}

	logger.Info("customer service login success", logger.Fields{
		"customerId": response.CustomerID,
	})

	return commons.SuccessResponse("login successful", response), nil
}
