// Package store persists component snapshots keyed by instance identity:
// series and escrows by series ID, routers by account, the reputation
// engine as a single record. State survives for the lifetime of the
// instance; there is no deletion, only terminal-state flags inside the
// snapshots themselves.
package store

import (
	"sync"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/escrow"
	"github.com/bitfsorg/libbond-go/reputation"
	"github.com/bitfsorg/libbond-go/router"
	"github.com/bitfsorg/libbond-go/series"
)

// Store persists component snapshots.
type Store interface {
	// PutSeries stores a plain-series snapshot, overwriting any previous
	// snapshot of the same series.
	PutSeries(snap series.Snapshot) error

	// GetSeries retrieves a plain-series snapshot by ID.
	GetSeries(id bond.SeriesID) (series.Snapshot, error)

	// ListSeries returns all stored plain-series snapshots.
	ListSeries() ([]series.Snapshot, error)

	// PutEscrow stores an escrow snapshot.
	PutEscrow(snap escrow.Snapshot) error

	// GetEscrow retrieves an escrow snapshot by series ID.
	GetEscrow(id bond.SeriesID) (escrow.Snapshot, error)

	// ListEscrows returns all stored escrow snapshots.
	ListEscrows() ([]escrow.Snapshot, error)

	// PutRouter stores a router snapshot keyed by its account.
	PutRouter(snap router.Snapshot) error

	// GetRouter retrieves a router snapshot by account.
	GetRouter(account bond.Address) (router.Snapshot, error)

	// PutReputation stores the reputation engine snapshot.
	PutReputation(snap reputation.Snapshot) error

	// GetReputation retrieves the reputation engine snapshot.
	GetReputation() (reputation.Snapshot, error)
}

// MemStore is an in-memory Store for tests and single-process use.
type MemStore struct {
	mu         sync.RWMutex
	series     map[bond.SeriesID]series.Snapshot
	escrows    map[bond.SeriesID]escrow.Snapshot
	routers    map[bond.Address]router.Snapshot
	reputation *reputation.Snapshot
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		series:  make(map[bond.SeriesID]series.Snapshot),
		escrows: make(map[bond.SeriesID]escrow.Snapshot),
		routers: make(map[bond.Address]router.Snapshot),
	}
}

// PutSeries stores a plain-series snapshot.
func (s *MemStore) PutSeries(snap series.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[snap.ID] = snap
	return nil
}

// GetSeries retrieves a plain-series snapshot by ID.
func (s *MemStore) GetSeries(id bond.SeriesID) (series.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.series[id]
	if !ok {
		return series.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// ListSeries returns all stored plain-series snapshots.
func (s *MemStore) ListSeries() ([]series.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]series.Snapshot, 0, len(s.series))
	for _, snap := range s.series {
		out = append(out, snap)
	}
	return out, nil
}

// PutEscrow stores an escrow snapshot.
func (s *MemStore) PutEscrow(snap escrow.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.escrows[snap.Series.ID] = snap
	return nil
}

// GetEscrow retrieves an escrow snapshot by series ID.
func (s *MemStore) GetEscrow(id bond.SeriesID) (escrow.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.escrows[id]
	if !ok {
		return escrow.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// ListEscrows returns all stored escrow snapshots.
func (s *MemStore) ListEscrows() ([]escrow.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]escrow.Snapshot, 0, len(s.escrows))
	for _, snap := range s.escrows {
		out = append(out, snap)
	}
	return out, nil
}

// PutRouter stores a router snapshot keyed by its account.
func (s *MemStore) PutRouter(snap router.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routers[snap.Account] = snap
	return nil
}

// GetRouter retrieves a router snapshot by account.
func (s *MemStore) GetRouter(account bond.Address) (router.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.routers[account]
	if !ok {
		return router.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// PutReputation stores the reputation engine snapshot.
func (s *MemStore) PutReputation(snap reputation.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reputation = &snap
	return nil
}

// GetReputation retrieves the reputation engine snapshot.
func (s *MemStore) GetReputation() (reputation.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.reputation == nil {
		return reputation.Snapshot{}, ErrNotFound
	}
	return *s.reputation, nil
}
