package escrow

import (
	"time"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/series"
)

// Snapshot is the full persistable state of an escrow series.
type Snapshot struct {
	Series                series.Snapshot
	Principal             uint64
	MinPurchase           uint64
	DepositDeadline       time.Time
	State                 State
	PrincipalClaimed      map[bond.Address]bool
	TotalPrincipalClaimed uint64
	DustSwept             bool
}

// Snapshot captures the current state for persistence.
func (e *Escrow) Snapshot() Snapshot {
	claimed := make(map[bond.Address]bool, len(e.principalClaimed))
	for addr, v := range e.principalClaimed {
		claimed[addr] = v
	}
	return Snapshot{
		Series:                e.bond.Snapshot(),
		Principal:             e.principal,
		MinPurchase:           e.minPurchase,
		DepositDeadline:       e.depositDeadline,
		State:                 e.state,
		PrincipalClaimed:      claimed,
		TotalPrincipalClaimed: e.totalPrincipalClaimed,
		DustSwept:             e.dustSwept,
	}
}

// NewFromSnapshot rebuilds an escrow from a persisted snapshot. The
// config's identity and term fields are taken from the snapshot;
// collaborators come from cfg.
func NewFromSnapshot(cfg Config, snap Snapshot) (*Escrow, error) {
	cfg.ID = snap.Series.ID
	cfg.Terms = snap.Series.Terms
	cfg.Principal = snap.Principal
	cfg.MinPurchase = snap.MinPurchase
	cfg.DepositDeadline = snap.DepositDeadline
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	restored, err := series.NewFromSnapshot(series.Config{
		Payments: cfg.Payments,
		Reporter: cfg.Reporter,
		Events:   cfg.Events,
		Logger:   cfg.Logger,
		Clock:    cfg.Clock,
	}, snap.Series)
	if err != nil {
		return nil, err
	}
	e.bond = restored
	e.state = snap.State
	for addr, v := range snap.PrincipalClaimed {
		e.principalClaimed[addr] = v
	}
	e.totalPrincipalClaimed = snap.TotalPrincipalClaimed
	e.dustSwept = snap.DustSwept
	return e, nil
}
