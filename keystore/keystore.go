// Package keystore stores the splitter account's signing key encrypted at
// rest with Argon2id + AES-256-GCM.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters for key encryption.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4
	Argon2KeyLen      = 32

	// Encryption format sizes.
	SaltLen     = 16
	NonceLen    = 12
	ChecksumLen = 4

	// KeyLen is the length of a serialized private key scalar.
	KeyLen = 32
)

// GenerateKey creates a new random signing key.
func GenerateKey() (*ec.PrivateKey, error) {
	priv, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("keystore: failed to generate key: %w", err)
	}
	return priv, nil
}

// EncryptKey encrypts the private key scalar with Argon2id + AES-256-GCM.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(argon2id(password,salt), nonce, scalar||checksum)
//
// The checksum is SHA256(scalar)[:4] for verifying correct decryption.
func EncryptKey(priv *ec.PrivateKey, password string) ([]byte, error) {
	if priv == nil {
		return nil, ErrNilKey
	}
	scalar := keyScalar(priv)

	// Generate random salt for Argon2id
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("keystore: failed to generate salt: %w", err)
	}

	// Derive encryption key using Argon2id
	derivedKey := argon2.IDKey(
		[]byte(password),
		salt,
		Argon2Time,
		Argon2Memory,
		Argon2Parallelism,
		Argon2KeyLen,
	)

	// Compute checksum: SHA256(scalar)[:4]
	scalarHash := sha256.Sum256(scalar)
	checksum := scalarHash[:ChecksumLen]

	// Prepare plaintext: scalar || checksum
	plaintext := make([]byte, 0, KeyLen+ChecksumLen)
	plaintext = append(plaintext, scalar...)
	plaintext = append(plaintext, checksum...)

	// AES-256-GCM encryption
	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("keystore: AES cipher creation failed: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("keystore: GCM creation failed: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("keystore: failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	// Output: salt(16B) || nonce(12B) || ciphertext
	result := make([]byte, 0, SaltLen+NonceLen+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)

	return result, nil
}

// DecryptKey decrypts a private key from the splitter.key format.
//
// Input format: salt(16B) || nonce(12B) || ciphertext
//
// Derives the key with Argon2id, decrypts with AES-256-GCM, then verifies
// the SHA256(scalar)[:4] checksum to confirm correct decryption.
func DecryptKey(encrypted []byte, password string) (*ec.PrivateKey, error) {
	minLen := SaltLen + NonceLen + ChecksumLen
	if len(encrypted) < minLen {
		return nil, ErrDecryptionFailed
	}

	// Parse components
	salt := encrypted[:SaltLen]
	nonce := encrypted[SaltLen : SaltLen+NonceLen]
	ciphertext := encrypted[SaltLen+NonceLen:]

	// Derive decryption key using Argon2id with same parameters
	derivedKey := argon2.IDKey(
		[]byte(password),
		salt,
		Argon2Time,
		Argon2Memory,
		Argon2Parallelism,
		Argon2KeyLen,
	)

	// AES-256-GCM decryption
	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	if len(plaintext) != KeyLen+ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	// Split scalar and checksum
	scalar := plaintext[:KeyLen]
	storedChecksum := plaintext[KeyLen:]

	// Verify checksum
	scalarHash := sha256.Sum256(scalar)
	expectedChecksum := scalarHash[:ChecksumLen]

	for i := 0; i < ChecksumLen; i++ {
		if storedChecksum[i] != expectedChecksum[i] {
			return nil, ErrChecksumMismatch
		}
	}

	priv, _ := ec.PrivateKeyFromBytes(scalar)
	return priv, nil
}

// SaveKey encrypts the key and writes it to path, creating parent
// directories as needed.
func SaveKey(path string, priv *ec.PrivateKey, password string) error {
	encrypted, err := EncryptKey(priv, password)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("keystore: create directory: %w", err)
	}
	if err := os.WriteFile(path, encrypted, 0600); err != nil {
		return fmt.Errorf("keystore: write %s: %w", path, err)
	}
	return nil
}

// LoadKey reads and decrypts the key file at path.
func LoadKey(path string, password string) (*ec.PrivateKey, error) {
	encrypted, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		return nil, fmt.Errorf("keystore: read %s: %w", path, err)
	}
	return DecryptKey(encrypted, password)
}

// KeyPath returns the path of the key file inside dataDir.
func KeyPath(dataDir string) string {
	return filepath.Join(dataDir, "splitter.key")
}

// keyScalar serializes the private key scalar as 32 bytes, zero-padded
// big-endian.
func keyScalar(priv *ec.PrivateKey) []byte {
	b := priv.D.Bytes()
	if len(b) < KeyLen {
		padded := make([]byte, KeyLen)
		copy(padded[KeyLen-len(b):], b)
		return padded
	}
	return b[:KeyLen]
}
