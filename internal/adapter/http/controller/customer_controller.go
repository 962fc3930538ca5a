package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/retail-bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-ledger/internal/commons"
)

type CustomerService interface {
	Register(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.RegisterCustomerResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
}

type CustomerController struct {
	service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := http.Handler(http.HandlerFunc(c.register))
	login := http.Handler(http.HandlerFunc(c.login))
	if authMiddleware != nil {
		register = authMiddleware(register)
		login = authMiddleware(login)
	}
	mux.Handle("/customers", register)
	mux.Handle("/customers/login", login)
}

func (c *CustomerController) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.RegisterCustomerResponse]("method not allowed"))
		return
	}

	var req models.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterCustomerResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.Register(r.Context(), req)
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

func (c *CustomerController) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoginResponse]("method not allowed"))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoginResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.Login(r.Context(), req)
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
