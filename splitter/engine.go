// Package splitter implements an equal-share payment splitter: a fixed
// registry of payees, a designated authority, and a guarded payout engine
// that distributes the full contract balance in registry order.
//
// The ledger is an external collaborator. A transfer may hand control to
// untrusted code that synchronously re-enters TriggerPayout before the outer
// run returns; the reentrancy guard is acquired before the first transfer and
// released on every exit path so that the nested call always observes it.
//
// Failed runs may be partially applied: transfers executed before the failing
// payee are irreversible and stand. Callers must treat a TriggerPayout error
// as "possibly partially distributed" and reconcile against the ledger.
package splitter

import "fmt"

// Ledger is the value-transfer primitive for the splitter's own account.
// Implementations are untrusted: Transfer may synchronously call back into
// the engine.
type Ledger interface {
	// Balance returns the splitter account's current balance.
	Balance() (uint64, error)
	// Transfer moves amount from the splitter account to the payee.
	Transfer(to AccountID, amount uint64) error
}

// EventSink receives the engine's reporting output: one Deposited event per
// accepted deposit and one PayoutCompleted event per fully successful run.
type EventSink interface {
	Deposited(from AccountID, amount uint64) error
	PayoutCompleted(records []PayoutRecord) error
}

// nopSink discards all events.
type nopSink struct{}

func (nopSink) Deposited(AccountID, uint64) error { return nil }

func (nopSink) PayoutCompleted([]PayoutRecord) error { return nil }

// reentrancyGuard prevents overlapping payout runs. The hosting ledger
// serializes invocations, so a plain flag suffices; the only way a second run
// can start while one is active is a synchronous callback from a transfer.
type reentrancyGuard struct {
	locked bool
}

func (g *reentrancyGuard) acquire() error {
	if g.locked {
		return ErrReentrancyGuardLocked
	}
	g.locked = true
	return nil
}

func (g *reentrancyGuard) release() {
	g.locked = false
}

// Engine executes payouts over a registry. Registry and ledger must be
// non-nil; a nil sink discards events.
type Engine struct {
	registry *Registry
	ledger   Ledger
	sink     EventSink
	guard    reentrancyGuard
}

// NewEngine creates a payout engine bound to a registry and ledger.
func NewEngine(registry *Registry, ledger Ledger, sink EventSink) *Engine {
	if sink == nil {
		sink = nopSink{}
	}
	return &Engine{
		registry: registry,
		ledger:   ledger,
		sink:     sink,
	}
}

// Registry returns the engine's registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// CalculatePayout previews the distribution of total over the registry
// without touching guard state or the ledger.
func (e *Engine) CalculatePayout(total uint64) ([]PayoutRecord, error) {
	return CalculatePayout(total, e.registry.Payees())
}

// Deposit validates and reports an inbound funding event. The hosting ledger
// has already credited the splitter account when this is invoked; the engine
// only rejects zero values and emits the event.
func (e *Engine) Deposit(from AccountID, amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("%w: deposit of 0 from %s", ErrZeroShare, from)
	}
	return e.sink.Deposited(from, amount)
}

// TriggerPayout distributes the splitter account's full balance equally among
// the registered payees, in registry order. Only the designated authority may
// invoke it.
//
// The run aborts with ErrZeroShare before transferring a zero amount and with
// ErrTransferFailed when the ledger rejects a transfer. In both cases the
// transfers already executed in this run stand; see the package documentation
// for the partial-failure contract. The guard is released on every path that
// acquired it, so a failed run never blocks the next one.
func (e *Engine) TriggerPayout(caller AccountID) ([]PayoutRecord, error) {
	if !e.registry.IsAuthority(caller) {
		return nil, ErrUnauthorized
	}
	if err := e.guard.acquire(); err != nil {
		return nil, err
	}
	defer e.guard.release()

	payees := e.registry.Payees()
	if len(payees) == 0 {
		return nil, ErrNoPayees
	}

	total, err := e.ledger.Balance()
	if err != nil {
		return nil, fmt.Errorf("splitter: read balance: %w", err)
	}

	records, err := CalculatePayout(total, payees)
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		if rec.Amount == 0 {
			return nil, fmt.Errorf("%w: payee %d of %d with total %d",
				ErrZeroShare, i, len(payees), total)
		}
		// Control may leave the engine here: the ledger can invoke
		// untrusted code that re-enters TriggerPayout.
		if err := e.ledger.Transfer(rec.Payee, rec.Amount); err != nil {
			return nil, fmt.Errorf("%w: payee %d (%s): %w",
				ErrTransferFailed, i, rec.Payee, err)
		}
	}

	if err := e.sink.PayoutCompleted(records); err != nil {
		return records, fmt.Errorf("splitter: record payout: %w", err)
	}
	return records, nil
}
