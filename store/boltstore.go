package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/escrow"
	"github.com/bitfsorg/libbond-go/reputation"
	"github.com/bitfsorg/libbond-go/router"
	"github.com/bitfsorg/libbond-go/series"
)

var (
	bucketSeries     = []byte("series")
	bucketEscrows    = []byte("escrows")
	bucketRouters    = []byte("routers")
	bucketReputation = []byte("reputation")
)

// reputationKey is the single key under which the engine snapshot lives.
var reputationKey = []byte("state")

// BoltStore persists snapshots in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSeries, bucketEscrows, bucketRouters, bucketReputation} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// PutSeries stores a plain-series snapshot.
func (s *BoltStore) PutSeries(snap series.Snapshot) error {
	return s.put(bucketSeries, snap.ID[:], snap)
}

// GetSeries retrieves a plain-series snapshot by ID.
func (s *BoltStore) GetSeries(id bond.SeriesID) (series.Snapshot, error) {
	var snap series.Snapshot
	if err := s.get(bucketSeries, id[:], &snap); err != nil {
		return series.Snapshot{}, err
	}
	return snap, nil
}

// ListSeries returns all stored plain-series snapshots.
func (s *BoltStore) ListSeries() ([]series.Snapshot, error) {
	var out []series.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSeries).ForEach(func(k, v []byte) error {
			var snap series.Snapshot
			if err := decodeGob(v, &snap); err != nil {
				return fmt.Errorf("store: decode series %x: %w", k, err)
			}
			out = append(out, snap)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutEscrow stores an escrow snapshot.
func (s *BoltStore) PutEscrow(snap escrow.Snapshot) error {
	return s.put(bucketEscrows, snap.Series.ID[:], snap)
}

// GetEscrow retrieves an escrow snapshot by series ID.
func (s *BoltStore) GetEscrow(id bond.SeriesID) (escrow.Snapshot, error) {
	var snap escrow.Snapshot
	if err := s.get(bucketEscrows, id[:], &snap); err != nil {
		return escrow.Snapshot{}, err
	}
	return snap, nil
}

// ListEscrows returns all stored escrow snapshots.
func (s *BoltStore) ListEscrows() ([]escrow.Snapshot, error) {
	var out []escrow.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEscrows).ForEach(func(k, v []byte) error {
			var snap escrow.Snapshot
			if err := decodeGob(v, &snap); err != nil {
				return fmt.Errorf("store: decode escrow %x: %w", k, err)
			}
			out = append(out, snap)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutRouter stores a router snapshot keyed by its account.
func (s *BoltStore) PutRouter(snap router.Snapshot) error {
	return s.put(bucketRouters, snap.Account[:], snap)
}

// GetRouter retrieves a router snapshot by account.
func (s *BoltStore) GetRouter(account bond.Address) (router.Snapshot, error) {
	var snap router.Snapshot
	if err := s.get(bucketRouters, account[:], &snap); err != nil {
		return router.Snapshot{}, err
	}
	return snap, nil
}

// PutReputation stores the reputation engine snapshot.
func (s *BoltStore) PutReputation(snap reputation.Snapshot) error {
	return s.put(bucketReputation, reputationKey, snap)
}

// GetReputation retrieves the reputation engine snapshot.
func (s *BoltStore) GetReputation() (reputation.Snapshot, error) {
	var snap reputation.Snapshot
	if err := s.get(bucketReputation, reputationKey, &snap); err != nil {
		return reputation.Snapshot{}, err
	}
	return snap, nil
}

func (s *BoltStore) put(bucket, key []byte, v interface{}) error {
	data, err := encodeGob(v)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put(key, data)
	})
}

func (s *BoltStore) get(bucket, key []byte, v interface{}) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucket).Get(key)
		if data == nil {
			return ErrNotFound
		}
		return decodeGob(data, v)
	})
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
