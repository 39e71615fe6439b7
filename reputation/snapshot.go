package reputation

import "github.com/bitfsorg/libbond-go/bond"

// Snapshot is the persistable state of the reputation engine.
type Snapshot struct {
	Protocols map[bond.Address]ProtocolStats
	Series    map[bond.SeriesID]SeriesStats
	Reporters map[bond.SeriesID][]bond.Address
}

// Snapshot captures the current state for persistence.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Protocols: make(map[bond.Address]ProtocolStats, len(e.protocols)),
		Series:    make(map[bond.SeriesID]SeriesStats, len(e.series)),
		Reporters: make(map[bond.SeriesID][]bond.Address, len(e.reporters)),
	}
	for addr, ps := range e.protocols {
		snap.Protocols[addr] = *ps
	}
	for id, ss := range e.series {
		snap.Series[id] = *ss
	}
	for id, set := range e.reporters {
		for addr := range set {
			snap.Reporters[id] = append(snap.Reporters[id], addr)
		}
	}
	return snap
}

// NewFromSnapshot rebuilds an engine from a persisted snapshot.
func NewFromSnapshot(cfg Config, snap Snapshot) (*Engine, error) {
	e, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	for addr, ps := range snap.Protocols {
		stats := ps
		e.protocols[addr] = &stats
	}
	for id, ss := range snap.Series {
		stats := ss
		e.series[id] = &stats
	}
	for id, addrs := range snap.Reporters {
		set := make(map[bond.Address]bool, len(addrs))
		for _, addr := range addrs {
			set[addr] = true
		}
		e.reporters[id] = set
	}
	return e, nil
}
