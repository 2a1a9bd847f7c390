package chain

import "errors"

var (
	// ErrNilParam indicates a required parameter was nil or empty.
	ErrNilParam = errors.New("chain: nil parameter")

	// ErrNoRecords indicates the distribution has no payout records.
	ErrNoRecords = errors.New("chain: no payout records")

	// ErrDustOutput indicates a payout amount below the dust limit.
	ErrDustOutput = errors.New("chain: payout amount below dust limit")

	// ErrInsufficientFunds indicates the funding UTXOs cannot cover the payout.
	ErrInsufficientFunds = errors.New("chain: insufficient funds")

	// ErrInvalidTxID indicates a transaction ID of the wrong length.
	ErrInvalidTxID = errors.New("chain: invalid transaction id")

	// ErrScriptBuild indicates a locking script could not be constructed.
	ErrScriptBuild = errors.New("chain: script build failed")

	// ErrSigningFailed indicates the transaction could not be signed.
	ErrSigningFailed = errors.New("chain: signing failed")
)
