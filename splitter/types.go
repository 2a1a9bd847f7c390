package splitter

import (
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// AccountIDLen is the length of an account identity in bytes.
const AccountIDLen = 20

// AccountID identifies a payee or the designated authority. It is the
// 20-byte P2PKH address hash of the account's public key.
type AccountID [AccountIDLen]byte

// AccountIDFromPublicKey derives an account identity from a secp256k1 public
// key (HASH160 of the compressed form).
func AccountIDFromPublicKey(pub *ec.PublicKey) AccountID {
	var id AccountID
	copy(id[:], pub.Hash())
	return id
}

// AccountIDFromHex parses a 40-character hex string into an AccountID.
func AccountIDFromHex(s string) (AccountID, error) {
	var id AccountID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("%w: %w", ErrInvalidAccountID, err)
	}
	if len(raw) != AccountIDLen {
		return id, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAccountID, AccountIDLen, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// String returns the hex encoding of the account identity.
func (id AccountID) String() string {
	return hex.EncodeToString(id[:])
}

// PayoutRecord is a single payee's result within one payout run. Records are
// computed per invocation and reported through the event sink; they are not
// contract state.
type PayoutRecord struct {
	Payee  AccountID `json:"payee"`
	Amount uint64    `json:"amount"` // satoshis
}
