package splitter

// Registry holds the payee list and the designated authority for one
// splitter instance. Both are fixed at construction; there is no mutation
// interface afterwards.
type Registry struct {
	payees    []AccountID
	authority AccountID
}

// NewRegistry stores the payee list and authority verbatim. The list may be
// empty (payouts against it fail with ErrNoPayees) and may contain duplicate
// identities, which simply receive independent shares. Payee order is
// preserved: when a payout total does not divide evenly, the remainder goes
// one unit each to the first payees in this order.
func NewRegistry(payees []AccountID, authority AccountID) *Registry {
	cp := make([]AccountID, len(payees))
	copy(cp, payees)
	return &Registry{
		payees:    cp,
		authority: authority,
	}
}

// Payees returns the registered payees in registration order. The returned
// slice is a copy; callers cannot alter the registry through it.
func (r *Registry) Payees() []AccountID {
	cp := make([]AccountID, len(r.payees))
	copy(cp, r.payees)
	return cp
}

// NumPayees returns the number of registered payees.
func (r *Registry) NumPayees() int {
	return len(r.payees)
}

// IsAuthority reports whether candidate is the designated authority.
func (r *Registry) IsAuthority(candidate AccountID) bool {
	return candidate == r.authority
}

// Authority returns the designated authority identity.
func (r *Registry) Authority() AccountID {
	return r.authority
}
