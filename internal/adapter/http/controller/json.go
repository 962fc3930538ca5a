package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/retail-bank-ledger/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps domain failures onto HTTP statuses. Anything unmapped is
// an internal error.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrSameAccount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBadCredential):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTargetNotFound),
		errors.Is(err, domain.ErrUnknownEmail):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicatePhone),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrOverdraftExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
