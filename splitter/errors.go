package splitter

import "errors"

var (
	// ErrUnauthorized indicates the caller is not the designated authority.
	ErrUnauthorized = errors.New("splitter: caller is not the designated authority")

	// ErrNoPayees indicates the registry has no payees to distribute to.
	ErrNoPayees = errors.New("splitter: no payees registered")

	// ErrZeroShare indicates a zero value where a non-zero value is expected.
	ErrZeroShare = errors.New("splitter: zero share")

	// ErrTransferFailed indicates the ledger reported failure for a transfer.
	ErrTransferFailed = errors.New("splitter: transfer failed")

	// ErrReentrancyGuardLocked indicates a payout run is already in progress.
	ErrReentrancyGuardLocked = errors.New("splitter: payout already in progress")

	// ErrInvalidAccountID indicates a malformed account identity.
	ErrInvalidAccountID = errors.New("splitter: invalid account id")
)
