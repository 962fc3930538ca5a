package domain

// Customer identity plus the account numbers it owns, in account-opening
// order. Identity fields never change after registration; the account list
// only grows. PasswordHash is whatever the configured credential verifier
// produced and is opaque to the ledger.
type Customer struct {
	ID             int64
	Name           string
	Email          string
	Phone          string
	PasswordHash   string
	AccountNumbers []int64
}

// OwnsAccount reports whether accountNumber is in the customer's list.
func (c Customer) OwnsAccount(accountNumber int64) bool {
	for _, n := range c.AccountNumbers {
		if n == accountNumber {
			return true
		}
	}
	return false
}
