package keystore

import "errors"

var (
	// ErrNilKey indicates a nil private key was provided.
	ErrNilKey = errors.New("keystore: nil private key")

	// ErrDecryptionFailed indicates wrong password or corrupted key data.
	ErrDecryptionFailed = errors.New("keystore: key decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("keystore: key checksum mismatch")

	// ErrKeyNotFound indicates the key file does not exist.
	ErrKeyNotFound = errors.New("keystore: key file not found")
)
