package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/paysplit-go/splitter"
)

func TestGenerateKey(t *testing.T) {
	k1, err := GenerateKey()
	require.NoError(t, err)
	require.NotNil(t, k1)

	k2, err := GenerateKey()
	require.NoError(t, err)

	assert.NotEqual(t, k1.D, k2.D, "two generated keys must differ")
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	encrypted, err := EncryptKey(priv, "correct horse")
	require.NoError(t, err)
	require.Greater(t, len(encrypted), SaltLen+NonceLen+KeyLen+ChecksumLen)

	decrypted, err := DecryptKey(encrypted, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, 0, priv.D.Cmp(decrypted.D))

	// The recovered key identifies the same account.
	assert.Equal(t,
		splitter.AccountIDFromPublicKey(priv.PubKey()),
		splitter.AccountIDFromPublicKey(decrypted.PubKey()))
}

func TestEncryptKeyNilKey(t *testing.T) {
	_, err := EncryptKey(nil, "pw")
	assert.ErrorIs(t, err, ErrNilKey)
}

func TestEncryptKeyRandomized(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	a, err := EncryptKey(priv, "pw")
	require.NoError(t, err)
	b, err := EncryptKey(priv, "pw")
	require.NoError(t, err)

	// Fresh salt and nonce per encryption.
	assert.NotEqual(t, a, b)
}

func TestDecryptKeyWrongPassword(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	encrypted, err := EncryptKey(priv, "right")
	require.NoError(t, err)

	_, err = DecryptKey(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptKeyTampered(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	encrypted, err := EncryptKey(priv, "pw")
	require.NoError(t, err)

	// Flip a ciphertext byte; GCM authentication must reject it.
	encrypted[len(encrypted)-1] ^= 0x01
	_, err = DecryptKey(encrypted, "pw")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptKeyTruncated(t *testing.T) {
	_, err := DecryptKey([]byte{0x01, 0x02, 0x03}, "pw")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestSaveLoadKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys", "splitter.key")

	priv, err := GenerateKey()
	require.NoError(t, err)

	require.NoError(t, SaveKey(path, priv, "pw"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadKey(path, "pw")
	require.NoError(t, err)
	assert.Equal(t, 0, priv.D.Cmp(loaded.D))
}

func TestLoadKeyNotFound(t *testing.T) {
	_, err := LoadKey("/nonexistent/splitter.key", "pw")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKeyPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/data", "splitter.key"),
		KeyPath("/data"))
}
