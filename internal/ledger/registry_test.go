package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/retail-bank-ledger/internal/domain"
)

func TestRegisterAllocatesSequentialIDs(t *testing.T) {
	r := NewRegistry(plainVerifier{})

	alice, err := r.Register("Alice", "a@x.com", "111", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice)

	bob, err := r.Register("Bob", "b@x.com", "222", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob)
}

func TestRegisterUniqueness(t *testing.T) {
	r := NewRegistry(plainVerifier{})

	_, err := r.Register("Alice", "a@x.com", "111", "pw")
	require.NoError(t, err)

	_, err = r.Register("Mallory", "a@x.com", "333", "pw")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// email is checked before phone, even when both collide
	_, err = r.Register("Mallory", "a@x.com", "111", "pw")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = r.Register("Mallory", "m@x.com", "111", "pw")
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)

	// failed registrations must not consume ids
	bob, err := r.Register("Bob", "b@x.com", "222", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob)
}

func TestAuthenticate(t *testing.T) {
	r := NewRegistry(plainVerifier{})
	id, err := r.Register("Alice", "a@x.com", "111", "pw")
	require.NoError(t, err)

	got, err := r.Authenticate("a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = r.Authenticate("nobody@x.com", "pw")
	assert.ErrorIs(t, err, domain.ErrUnknownEmail)

	_, err = r.Authenticate("a@x.com", "nope")
	assert.ErrorIs(t, err, domain.ErrBadCredential)
}

func TestLinkAndOwnsAccount(t *testing.T) {
	r := NewRegistry(plainVerifier{})
	id, err := r.Register("Alice", "a@x.com", "111", "pw")
	require.NoError(t, err)

	assert.ErrorIs(t, r.LinkAccount(42, 10000001), domain.ErrCustomerNotFound)

	require.NoError(t, r.LinkAccount(id, 10000001))
	require.NoError(t, r.LinkAccount(id, 10000002))

	assert.True(t, r.OwnsAccount(id, 10000001))
	assert.True(t, r.OwnsAccount(id, 10000002))
	assert.False(t, r.OwnsAccount(id, 10000003))
	assert.False(t, r.OwnsAccount(42, 10000001))

	customer, err := r.Customer(id)
	require.NoError(t, err)
	assert.Equal(t, []int64{10000001, 10000002}, customer.AccountNumbers, "list keeps opening order")
}

func TestCustomerReturnsCopies(t *testing.T) {
	r := NewRegistry(plainVerifier{})
	id, err := r.Register("Alice", "a@x.com", "111", "pw")
	require.NoError(t, err)
	require.NoError(t, r.LinkAccount(id, 10000001))

	customer, err := r.Customer(id)
	require.NoError(t, err)
	customer.AccountNumbers[0] = 5

	again, err := r.Customer(id)
	require.NoError(t, err)
	assert.Equal(t, int64(10000001), again.AccountNumbers[0])
}
