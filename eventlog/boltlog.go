package eventlog

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/paysplit-go/splitter"
)

var bucketEvents = []byte("events")

// BoltLog is an append-only event log persisted in bbolt. Keys are the
// bucket's 8-byte big-endian sequence numbers, so replay order matches
// append order.
type BoltLog struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ splitter.EventSink = (*BoltLog)(nil)

// OpenBoltLog opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltLog(dbPath string) (*BoltLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("eventlog: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("eventlog: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("eventlog: create bucket: %w", err)
	}

	return &BoltLog{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLog) Close() error { return l.db.Close() }

// Deposited appends a deposit event.
func (l *BoltLog) Deposited(from splitter.AccountID, amount uint64) error {
	return l.append(Event{
		Kind:   KindDeposit,
		From:   from,
		Amount: amount,
	})
}

// PayoutCompleted appends a payout event carrying the full record list.
func (l *BoltLog) PayoutCompleted(records []splitter.PayoutRecord) error {
	return l.append(Event{
		Kind:    KindPayout,
		Records: records,
	})
}

func (l *BoltLog) append(ev Event) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("eventlog: next sequence: %w", err)
		}
		ev.Seq = seq
		ev.Time = time.Now().UTC()

		data, err := encodeGob(&ev)
		if err != nil {
			return fmt.Errorf("eventlog: encode event: %w", err)
		}
		if err := bucket.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("eventlog: put event: %w", err)
		}
		return nil
	})
}

// Events replays all logged events in sequence order.
func (l *BoltLog) Events() ([]Event, error) {
	var events []Event
	err := l.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEvents).ForEach(func(k, v []byte) error {
			var ev Event
			if err := decodeGob(v, &ev); err != nil {
				return fmt.Errorf("eventlog: decode event: %w", err)
			}
			events = append(events, ev)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// seqKey encodes a sequence number as an 8-byte big-endian key for sorted storage.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
