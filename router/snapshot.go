package router

import "github.com/bitfsorg/libbond-go/bond"

// Snapshot is the persistable state of a router. The series binding is
// re-established by the caller after restore (references do not persist).
type Snapshot struct {
	Issuer         bond.Address
	Operator       bond.Address
	Account        bond.Address
	ShareBps       uint32
	TotalReceived  uint64
	TotalRouted    uint64
	TotalReturned  uint64
	Pending        uint64
	FailCount      uint64
	LastFailReason string
}

// Snapshot captures the current state for persistence.
func (r *Router) Snapshot() Snapshot {
	return Snapshot{
		Issuer:         r.issuer,
		Operator:       r.operator,
		Account:        r.account,
		ShareBps:       r.shareBps,
		TotalReceived:  r.totalReceived,
		TotalRouted:    r.totalRouted,
		TotalReturned:  r.totalReturned,
		Pending:        r.pending,
		FailCount:      r.failCount,
		LastFailReason: r.lastFailReason,
	}
}

// NewFromSnapshot rebuilds a router from a persisted snapshot. The caller
// re-binds the series afterwards.
func NewFromSnapshot(cfg Config, snap Snapshot) (*Router, error) {
	cfg.Issuer = snap.Issuer
	cfg.Operator = snap.Operator
	cfg.Account = snap.Account
	cfg.ShareBps = snap.ShareBps
	r, err := New(cfg)
	if err != nil {
		return nil, err
	}
	r.totalReceived = snap.TotalReceived
	r.totalRouted = snap.TotalRouted
	r.totalReturned = snap.TotalReturned
	r.pending = snap.Pending
	r.failCount = snap.FailCount
	r.lastFailReason = snap.LastFailReason
	return r, nil
}
