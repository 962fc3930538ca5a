package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Verifier turns plaintext credentials into opaque stored verifiers and
// checks plaintext against them. The ledger never sees plaintext beyond
// these two calls.
type Verifier interface {
	Hash(plain string) (string, error)
	Verify(plain, stored string) bool
}

// BcryptVerifier is the default Verifier. Cost 0 means bcrypt.DefaultCost.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(plain string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(hashed), nil
}

func (v BcryptVerifier) Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
