package ledger

import (
	"sort"
	"sync"

	"github.com/api-sage/retail-bank-ledger/internal/auth"
	"github.com/api-sage/retail-bank-ledger/internal/domain"
)

// Registry owns all customer records and the email/phone uniqueness
// indexes. Registration and id allocation are serialized so concurrent
// registrations can neither collide on ids nor slip past the uniqueness
// checks.
type Registry struct {
	mu        sync.RWMutex
	verifier  auth.Verifier
	nextID    int64
	customers map[int64]*domain.Customer
	emailToID map[string]int64
	phoneToID map[string]int64
}

func NewRegistry(verifier auth.Verifier) *Registry {
	return &Registry{
		verifier:  verifier,
		nextID:    1,
		customers: make(map[int64]*domain.Customer),
		emailToID: make(map[string]int64),
		phoneToID: make(map[string]int64),
	}
}

// Register stores a new customer and returns its id. Email is checked
// before phone; a failed registration consumes no id.
func (r *Registry) Register(name, email, phone, password string) (int64, error) {
	hashed, err := r.verifier.Hash(password)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emailToID[email]; exists {
		return 0, domain.ErrDuplicateEmail
	}
	if _, exists := r.phoneToID[phone]; exists {
		return 0, domain.ErrDuplicatePhone
	}

	id := r.nextID
	r.nextID++

	r.customers[id] = &domain.Customer{
		ID:           id,
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashed,
	}
	r.emailToID[email] = id
	r.phoneToID[phone] = id

	return id, nil
}

// Authenticate resolves an email to a customer id when the password
// matches the stored verifier.
func (r *Registry) Authenticate(email, password string) (int64, error) {
	r.mu.RLock()
	id, ok := r.emailToID[email]
	var stored string
	if ok {
		stored = r.customers[id].PasswordHash
	}
	r.mu.RUnlock()

	if !ok {
		return 0, domain.ErrUnknownEmail
	}
	if !r.verifier.Verify(password, stored) {
		return 0, domain.ErrBadCredential
	}
	return id, nil
}

// LinkAccount appends an account number to the customer's list. Account
// numbers are globally unique by allocation, so no membership check is
// needed.
func (r *Registry) LinkAccount(customerID, accountNumber int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[customerID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.AccountNumbers = append(c.AccountNumbers, accountNumber)
	return nil
}

// OwnsAccount reports whether the customer's account list contains the
// given account number.
func (r *Registry) OwnsAccount(customerID, accountNumber int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[customerID]
	return ok && c.OwnsAccount(accountNumber)
}

// Customer returns a value copy of the customer record.
func (r *Registry) Customer(customerID int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[customerID]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return copyCustomer(c), nil
}

// Customers returns value copies of every customer, ordered by id.
func (r *Registry) Customers() []domain.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, copyCustomer(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyCustomer(c *domain.Customer) domain.Customer {
	cp := *c
	cp.AccountNumbers = append([]int64(nil), c.AccountNumbers...)
	return cp
}
