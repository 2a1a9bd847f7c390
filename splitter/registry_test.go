package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_StoresVerbatim(t *testing.T) {
	payees := makeAccounts(3)
	reg := NewRegistry(payees, authority)

	assert.Equal(t, payees, reg.Payees())
	assert.Equal(t, 3, reg.NumPayees())
	assert.Equal(t, authority, reg.Authority())
}

func TestNewRegistry_EmptyAndDuplicatesAllowed(t *testing.T) {
	// Emptiness is a valid construction state; it only blocks payouts.
	empty := NewRegistry(nil, authority)
	assert.Equal(t, 0, empty.NumPayees())
	assert.Empty(t, empty.Payees())

	// Duplicate payees are stored as-is.
	dup := makeAccount(0xAB)
	reg := NewRegistry([]AccountID{dup, dup}, authority)
	assert.Equal(t, []AccountID{dup, dup}, reg.Payees())
}

func TestRegistry_Immutable(t *testing.T) {
	input := makeAccounts(3)
	reg := NewRegistry(input, authority)

	// Mutating the caller's slice must not reach the registry.
	input[0] = makeAccount(0xFF)
	assert.Equal(t, makeAccount(1), reg.Payees()[0])

	// Mutating a returned slice must not either.
	out := reg.Payees()
	out[1] = makeAccount(0xFF)
	assert.Equal(t, makeAccount(2), reg.Payees()[1])
}

func TestRegistry_IsAuthority(t *testing.T) {
	reg := NewRegistry(makeAccounts(2), authority)

	assert.True(t, reg.IsAuthority(authority))
	assert.False(t, reg.IsAuthority(makeAccount(1)))
	assert.False(t, reg.IsAuthority(AccountID{}))
}

func TestAccountIDFromHex(t *testing.T) {
	id, err := AccountIDFromHex("aa00000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), id[0])
	assert.Equal(t, "aa00000000000000000000000000000000000000", id.String())

	_, err = AccountIDFromHex("aabb")
	assert.ErrorIs(t, err, ErrInvalidAccountID)

	_, err = AccountIDFromHex("zz00000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrInvalidAccountID)
}
