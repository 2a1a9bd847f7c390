// Package eventlog provides event sinks for the splitter engine: an
// in-memory sink and a bbolt-backed append-only log that survives restarts.
package eventlog

import (
	"sync"
	"time"

	"github.com/bitfsorg/paysplit-go/splitter"
)

// Event kinds.
const (
	KindDeposit = "deposit"
	KindPayout  = "payout"
)

// Event is one logged contract event. From and Amount are set for deposits;
// Records is set for completed payout runs.
type Event struct {
	Seq     uint64
	Time    time.Time
	Kind    string
	From    splitter.AccountID
	Amount  uint64
	Records []splitter.PayoutRecord
}

// MemoryLog is an in-memory event sink. Safe for concurrent use.
type MemoryLog struct {
	mu     sync.Mutex
	events []Event
	seq    uint64
}

// Compile-time interface check.
var _ splitter.EventSink = (*MemoryLog)(nil)

// NewMemoryLog creates an empty in-memory log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Deposited appends a deposit event.
func (l *MemoryLog) Deposited(from splitter.AccountID, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.events = append(l.events, Event{
		Seq:    l.seq,
		Time:   time.Now().UTC(),
		Kind:   KindDeposit,
		From:   from,
		Amount: amount,
	})
	return nil
}

// PayoutCompleted appends a payout event carrying the full record list.
func (l *MemoryLog) PayoutCompleted(records []splitter.PayoutRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	cp := make([]splitter.PayoutRecord, len(records))
	copy(cp, records)
	l.events = append(l.events, Event{
		Seq:     l.seq,
		Time:    time.Now().UTC(),
		Kind:    KindPayout,
		Records: cp,
	})
	return nil
}

// Events returns all logged events in append order.
func (l *MemoryLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := make([]Event, len(l.events))
	copy(cp, l.events)
	return cp
}
