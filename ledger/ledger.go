// Package ledger provides account books backing the splitter's value-transfer
// collaborator: an in-memory book for embedding and tests, and a bbolt-backed
// book for persistent deployments. An Account scopes a book to one owner and
// satisfies the payout engine's Ledger interface.
package ledger

import (
	"sync"

	"github.com/bitfsorg/paysplit-go/splitter"
)

// Book tracks balances for a set of accounts.
type Book interface {
	// Balance returns the account's balance. Unknown accounts hold 0.
	Balance(acct splitter.AccountID) (uint64, error)
	// Credit adds amount to the account's balance.
	Credit(acct splitter.AccountID, amount uint64) error
	// Transfer moves amount between accounts. Returns ErrInsufficientFunds
	// if the source balance is too small; nothing moves in that case.
	Transfer(from, to splitter.AccountID, amount uint64) error
}

// MemoryBook is an in-memory Book. Safe for concurrent use.
type MemoryBook struct {
	mu       sync.Mutex
	balances map[splitter.AccountID]uint64
}

// Compile-time interface check.
var _ Book = (*MemoryBook)(nil)

// NewMemoryBook creates an empty in-memory account book.
func NewMemoryBook() *MemoryBook {
	return &MemoryBook{
		balances: make(map[splitter.AccountID]uint64),
	}
}

// Balance returns the account's balance.
func (b *MemoryBook) Balance(acct splitter.AccountID) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[acct], nil
}

// Credit adds amount to the account's balance.
func (b *MemoryBook) Credit(acct splitter.AccountID, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[acct] += amount
	return nil
}

// Transfer moves amount from one account to another.
func (b *MemoryBook) Transfer(from, to splitter.AccountID, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	have := b.balances[from]
	if have < amount {
		return errInsufficient(from, have, amount)
	}
	b.balances[from] = have - amount
	b.balances[to] += amount
	return nil
}

// Account is a Book scoped to a single owner. It satisfies the payout
// engine's Ledger interface: Balance reads the owner's balance and Transfer
// always debits the owner.
type Account struct {
	book  Book
	owner splitter.AccountID
}

// Compile-time interface check.
var _ splitter.Ledger = (*Account)(nil)

// NewAccount scopes book to owner.
func NewAccount(book Book, owner splitter.AccountID) *Account {
	return &Account{book: book, owner: owner}
}

// Owner returns the account this view is scoped to.
func (a *Account) Owner() splitter.AccountID {
	return a.owner
}

// Balance returns the owner's balance.
func (a *Account) Balance() (uint64, error) {
	return a.book.Balance(a.owner)
}

// Transfer moves amount from the owner to the payee.
func (a *Account) Transfer(to splitter.AccountID, amount uint64) error {
	return a.book.Transfer(a.owner, to, amount)
}
