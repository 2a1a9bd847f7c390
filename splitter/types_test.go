package splitter

import (
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountIDFromPublicKey(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)

	id := AccountIDFromPublicKey(priv.PubKey())
	assert.Equal(t, priv.PubKey().Hash(), id[:])
	assert.NotEqual(t, AccountID{}, id)

	// Derivation is deterministic.
	assert.Equal(t, id, AccountIDFromPublicKey(priv.PubKey()))
}
