package ledger

import (
	"errors"
	"fmt"

	"github.com/bitfsorg/paysplit-go/splitter"
)

var (
	// ErrInsufficientFunds indicates the source account cannot cover a transfer.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
)

func errInsufficient(from splitter.AccountID, have, need uint64) error {
	return fmt.Errorf("%w: account %s has %d sat, need %d sat", ErrInsufficientFunds, from, have, need)
}
