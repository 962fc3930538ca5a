package domain

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicatePhone     = errors.New("phone already registered")
	ErrUnknownEmail       = errors.New("email not registered")
	ErrBadCredential      = errors.New("wrong password")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrNotOwner           = errors.New("account does not belong to customer")
	ErrAccountNotFound    = errors.New("account not found")
	ErrTargetNotFound     = errors.New("target account not found")
	ErrSameAccount        = errors.New("cannot transfer to the same account")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrOverdraftExceeded  = errors.New("overdraft limit exceeded")

	// ErrLedgerCorrupted is returned when an account's balance no longer
	// matches its history. The account refuses further mutation once this
	// has been observed.
	ErrLedgerCorrupted = errors.New("ledger state corrupted")
)
