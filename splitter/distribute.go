package splitter

// CalculatePayout splits total evenly across the given payees. Every payee
// receives total/n; the first total%n payees receive one extra unit, so the
// record amounts always sum to total.
//
// This is a pure preview: zero-amount records are returned without error.
// Only TriggerPayout enforces the non-zero-share rule.
func CalculatePayout(total uint64, payees []AccountID) ([]PayoutRecord, error) {
	if len(payees) == 0 {
		return nil, ErrNoPayees
	}

	n := uint64(len(payees))
	base := total / n
	remainder := total % n

	records := make([]PayoutRecord, len(payees))
	for i, payee := range payees {
		amount := base
		if uint64(i) < remainder {
			amount++
		}
		records[i] = PayoutRecord{Payee: payee, Amount: amount}
	}
	return records, nil
}
