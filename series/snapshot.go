package series

import (
	"math/big"

	"github.com/bitfsorg/libbond-go/bond"
)

// Snapshot is the full persistable state of a series. Produced by
// Snapshot, restored with NewFromSnapshot; the store packages persist it
// verbatim (gob).
type Snapshot struct {
	ID            bond.SeriesID
	Terms         Terms
	Accumulator   *big.Int
	LastSeen      map[bond.Address]*big.Int
	Unclaimed     map[bond.Address]uint64
	TotalReceived uint64
	Matured       bool
	Supply        uint64
	Minted        bool
	Balances      map[bond.Address]uint64
}

// Snapshot captures the current state for persistence.
func (s *Series) Snapshot() Snapshot {
	snap := Snapshot{
		ID:            s.id,
		Terms:         s.terms,
		Accumulator:   new(big.Int).Set(s.accumulator),
		LastSeen:      make(map[bond.Address]*big.Int, len(s.lastSeen)),
		Unclaimed:     make(map[bond.Address]uint64, len(s.unclaimed)),
		TotalReceived: s.totalReceived,
		Matured:       s.matured,
		Supply:        s.units.TotalSupply(),
		Minted:        s.units.Minted(),
		Balances:      s.units.Balances(),
	}
	for addr, v := range s.lastSeen {
		snap.LastSeen[addr] = new(big.Int).Set(v)
	}
	for addr, v := range s.unclaimed {
		snap.Unclaimed[addr] = v
	}
	return snap
}

// NewFromSnapshot rebuilds a series from a persisted snapshot. The config's
// ID and Terms are taken from the snapshot; collaborators come from cfg.
func NewFromSnapshot(cfg Config, snap Snapshot) (*Series, error) {
	cfg.ID = snap.ID
	cfg.Terms = snap.Terms
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if snap.Accumulator != nil {
		s.accumulator.Set(snap.Accumulator)
	}
	for addr, v := range snap.LastSeen {
		s.lastSeen[addr] = new(big.Int).Set(v)
	}
	for addr, v := range snap.Unclaimed {
		s.unclaimed[addr] = v
	}
	s.totalReceived = snap.TotalReceived
	s.matured = snap.Matured
	s.units.Restore(snap.Supply, snap.Minted, snap.Balances)
	return s, nil
}
