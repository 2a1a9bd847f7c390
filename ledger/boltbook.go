package ledger

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/paysplit-go/splitter"
)

var bucketBalances = []byte("balances")

// BoltBook is a Book persisted in a bbolt database. Transfers are atomic:
// debit and credit happen in one write transaction.
type BoltBook struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Book = (*BoltBook)(nil)

// OpenBoltBook opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltBook(dbPath string) (*BoltBook, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBalances)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create bucket: %w", err)
	}

	return &BoltBook{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltBook) Close() error { return b.db.Close() }

// Balance returns the account's balance. Unknown accounts hold 0.
func (b *BoltBook) Balance(acct splitter.AccountID) (uint64, error) {
	var balance uint64
	err := b.db.View(func(tx *bbolt.Tx) error {
		balance = decodeBalance(tx.Bucket(bucketBalances).Get(acct[:]))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("ledger: read balance: %w", err)
	}
	return balance, nil
}

// Credit adds amount to the account's balance.
func (b *BoltBook) Credit(acct splitter.AccountID, amount uint64) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketBalances)
		balance := decodeBalance(bucket.Get(acct[:]))
		return bucket.Put(acct[:], encodeBalance(balance+amount))
	})
	if err != nil {
		return fmt.Errorf("ledger: credit: %w", err)
	}
	return nil
}

// Transfer moves amount between accounts within one write transaction, so a
// failed transfer leaves both balances unchanged.
func (b *BoltBook) Transfer(from, to splitter.AccountID, amount uint64) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketBalances)

		have := decodeBalance(bucket.Get(from[:]))
		if have < amount {
			return errInsufficient(from, have, amount)
		}
		if err := bucket.Put(from[:], encodeBalance(have-amount)); err != nil {
			return fmt.Errorf("ledger: debit %s: %w", from, err)
		}

		balance := decodeBalance(bucket.Get(to[:]))
		if err := bucket.Put(to[:], encodeBalance(balance+amount)); err != nil {
			return fmt.Errorf("ledger: credit %s: %w", to, err)
		}
		return nil
	})
}

// encodeBalance encodes a balance as an 8-byte big-endian value.
func encodeBalance(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

// decodeBalance decodes a stored balance; nil (absent key) decodes to 0.
func decodeBalance(raw []byte) uint64 {
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}
