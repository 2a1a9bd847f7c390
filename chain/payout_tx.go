// Package chain renders a computed payout distribution as a BSV transaction:
// one P2PKH output per payee record, funded from the splitter account's
// UTXOs, with change returned to the splitter. It builds and signs only; it
// does not broadcast.
package chain

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/bitfsorg/paysplit-go/splitter"
)

const (
	// DustLimit is the minimum P2PKH output value in satoshis.
	DustLimit = uint64(546)

	// DefaultFeeRate is the default fee rate in sat/KB.
	DefaultFeeRate = uint64(1)

	// TxIDLen is the length of a transaction ID.
	TxIDLen = 32
)

// UTXO represents an unspent output of the splitter account.
type UTXO struct {
	TxID         []byte         `json:"txid"`          // 32 bytes
	Vout         uint32         `json:"vout"`
	Amount       uint64         `json:"amount"`        // satoshis
	ScriptPubKey []byte         `json:"script_pubkey"` // locking script bytes
	PrivateKey   *ec.PrivateKey `json:"-"`             // signing key (not serialized)
}

// PayoutTxParams holds parameters for building a payout transaction.
type PayoutTxParams struct {
	Records    []splitter.PayoutRecord // computed distribution, registry order
	Funding    []*UTXO                 // splitter account UTXOs to spend
	ChangeAddr splitter.AccountID      // change destination (the splitter account)
	FeeRate    uint64                  // sat/KB; DefaultFeeRate if 0
	Mainnet    bool                    // address encoding network
}

// PayoutTx wraps a built payout transaction.
//
// Output layout:
//
//	[0..n-1] P2PKH -> Records[i].Payee, Records[i].Amount satoshis
//	[n]      P2PKH -> Change (omitted when at or below dust)
type PayoutTx struct {
	RawTx      []byte // serialized transaction bytes (unsigned until signed)
	TxID       []byte // transaction hash (32 bytes, set by SignPayoutTx)
	ChangeUTXO *UTXO  // change output (nil if dust)
}

// BuildPayoutTx constructs an unsigned payout transaction from a computed
// distribution. Every record must be at or above the dust limit; a
// zero-amount record from a preview is rejected here like any other dust
// output.
func BuildPayoutTx(params *PayoutTxParams) (*PayoutTx, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: params", ErrNilParam)
	}
	if len(params.Records) == 0 {
		return nil, ErrNoRecords
	}
	if len(params.Funding) == 0 {
		return nil, fmt.Errorf("%w: no funding inputs", ErrNilParam)
	}
	for i, rec := range params.Records {
		if rec.Amount < DustLimit {
			return nil, fmt.Errorf("%w: record %d pays %d sat to %s",
				ErrDustOutput, i, rec.Amount, rec.Payee)
		}
	}
	for i, utxo := range params.Funding {
		if utxo == nil {
			return nil, fmt.Errorf("%w: funding[%d]", ErrNilParam, i)
		}
		if len(utxo.TxID) != TxIDLen {
			return nil, fmt.Errorf("%w: funding[%d] TxID length %d", ErrInvalidTxID, i, len(utxo.TxID))
		}
	}

	feeRate := params.FeeRate
	if feeRate == 0 {
		feeRate = DefaultFeeRate
	}

	// Fee estimate covers payee outputs plus a possible change output.
	estSize := EstimateTxSize(len(params.Funding), len(params.Records)+1)
	estFee := EstimateFee(estSize, feeRate)

	var totalOut uint64
	for _, rec := range params.Records {
		totalOut += rec.Amount
	}
	var totalAvailable uint64
	for _, utxo := range params.Funding {
		totalAvailable += utxo.Amount
	}
	if totalAvailable < totalOut+estFee {
		return nil, fmt.Errorf("%w: need %d sat, have %d sat",
			ErrInsufficientFunds, totalOut+estFee, totalAvailable)
	}

	sdkTx := transaction.NewTransaction()

	for i, utxo := range params.Funding {
		sourceHash, err := chainhash.NewHash(utxo.TxID)
		if err != nil {
			return nil, fmt.Errorf("%w: funding[%d] TxID: %w", ErrScriptBuild, i, err)
		}
		sdkTx.AddInput(&transaction.TransactionInput{
			SourceTXID:       sourceHash,
			SourceTxOutIndex: utxo.Vout,
			SequenceNumber:   transaction.DefaultSequenceNumber,
		})
	}

	for i, rec := range params.Records {
		lockScript, err := lockToHash(rec.Payee, params.Mainnet)
		if err != nil {
			return nil, fmt.Errorf("chain: record %d locking script: %w", i, err)
		}
		sdkTx.Outputs = append(sdkTx.Outputs, &transaction.TransactionOutput{
			Satoshis:      rec.Amount,
			LockingScript: lockScript,
		})
	}

	// Change output.
	changeAmount := totalAvailable - totalOut - estFee
	var changeUTXO *UTXO

	if changeAmount > DustLimit {
		changeLockScript, err := lockToHash(params.ChangeAddr, params.Mainnet)
		if err != nil {
			return nil, fmt.Errorf("chain: change locking script: %w", err)
		}
		sdkTx.Outputs = append(sdkTx.Outputs, &transaction.TransactionOutput{
			Satoshis:      changeAmount,
			LockingScript: changeLockScript,
		})
		changeUTXO = &UTXO{
			Vout:         uint32(len(params.Records)),
			Amount:       changeAmount,
			ScriptPubKey: []byte(*changeLockScript),
		}
	}

	return &PayoutTx{
		RawTx:      sdkTx.Bytes(),
		ChangeUTXO: changeUTXO,
	}, nil
}

// SignPayoutTx signs all inputs of a payout transaction using the private
// keys carried by the funding UTXOs, matched to inputs by position. It
// returns the signed transaction hex and updates ptx with the signed bytes
// and transaction ID.
func SignPayoutTx(ptx *PayoutTx, funding []*UTXO) (string, error) {
	if ptx == nil {
		return "", fmt.Errorf("%w: payout tx", ErrNilParam)
	}
	if len(ptx.RawTx) == 0 {
		return "", fmt.Errorf("%w: RawTx is empty", ErrSigningFailed)
	}
	if len(funding) == 0 {
		return "", fmt.Errorf("%w: funding", ErrNilParam)
	}

	sdkTx, err := transaction.NewTransactionFromBytes(ptx.RawTx)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse raw tx: %w", ErrSigningFailed, err)
	}
	if len(funding) != len(sdkTx.Inputs) {
		return "", fmt.Errorf("%w: have %d UTXOs but tx has %d inputs",
			ErrSigningFailed, len(funding), len(sdkTx.Inputs))
	}

	for i, utxo := range funding {
		if utxo == nil {
			return "", fmt.Errorf("%w: funding[%d] is nil", ErrNilParam, i)
		}
		if utxo.PrivateKey == nil {
			return "", fmt.Errorf("%w: funding[%d] has nil PrivateKey", ErrSigningFailed, i)
		}
		if len(utxo.ScriptPubKey) == 0 {
			return "", fmt.Errorf("%w: funding[%d] has empty ScriptPubKey", ErrSigningFailed, i)
		}

		unlocker, err := p2pkh.Unlock(utxo.PrivateKey, nil)
		if err != nil {
			return "", fmt.Errorf("%w: failed to create unlocker for input %d: %w",
				ErrSigningFailed, i, err)
		}

		// Attach the source output so the sighash can be computed.
		lockingScript := script.NewFromBytes(utxo.ScriptPubKey)
		sdkTx.Inputs[i].SetSourceTxOutput(&transaction.TransactionOutput{
			Satoshis:      utxo.Amount,
			LockingScript: lockingScript,
		})
		sdkTx.Inputs[i].UnlockingScriptTemplate = unlocker
	}

	if err := sdkTx.Sign(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	ptx.RawTx = sdkTx.Bytes()
	ptx.TxID = sdkTx.TxID().CloneBytes()
	if ptx.ChangeUTXO != nil {
		ptx.ChangeUTXO.TxID = ptx.TxID
	}

	return sdkTx.Hex(), nil
}

// lockToHash builds a P2PKH locking script paying the given address hash.
func lockToHash(id splitter.AccountID, mainnet bool) (*script.Script, error) {
	addr, err := script.NewAddressFromPublicKeyHash(id[:], mainnet)
	if err != nil {
		return nil, fmt.Errorf("%w: address from hash: %w", ErrScriptBuild, err)
	}
	lockScript, err := p2pkh.Lock(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: P2PKH lock script: %w", ErrScriptBuild, err)
	}
	return lockScript, nil
}

// EstimateTxSize gives a rough transaction size in bytes for fee estimation.
func EstimateTxSize(numInputs, numOutputs int) int {
	// Base: version(4) + locktime(4) + input count varint(1) + output count varint(1) = 10
	// Per input: prevhash(32) + previndex(4) + scriptlen varint(1) + script(~107 for P2PKH) + sequence(4) = 148
	// Per output: value(8) + scriptlen varint(1) + script(~25 for P2PKH) = 34
	return 10 + numInputs*148 + numOutputs*34
}

// EstimateFee estimates the transaction fee for a given size and fee rate.
// Returns ceil(txSizeBytes * feeRate / 1000).
func EstimateFee(txSizeBytes int, feeRate uint64) uint64 {
	if feeRate == 0 {
		feeRate = DefaultFeeRate
	}
	fee := uint64(txSizeBytes) * feeRate
	// Ceiling division by 1000
	return (fee + 999) / 1000
}
