package events

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketEvents = []byte("events")

// BoltLog persists the audit log in a bbolt database. Events are keyed by
// their big-endian sequence number so a cursor scan yields append order.
type BoltLog struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Log = (*BoltLog)(nil)

// OpenBoltLog opens or creates the event log database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltLog(dbPath string) (*BoltLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("events: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("events: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: create bucket: %w", err)
	}
	return &BoltLog{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLog) Close() error { return l.db.Close() }

// Append records the event, assigning the next sequence number.
func (l *BoltLog) Append(ev *Event) error {
	if ev == nil {
		return ErrNilEvent
	}
	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("events: next sequence: %w", err)
		}
		ev.Seq = seq

		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(ev); err != nil {
			return fmt.Errorf("events: encode event: %w", err)
		}
		return b.Put(seqKey(seq), buf.Bytes())
	})
}

// Events returns all recorded events in append order.
func (l *BoltLog) Events() ([]Event, error) {
	var out []Event
	err := l.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketEvents).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var ev Event
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&ev); err != nil {
				return fmt.Errorf("events: decode event %x: %w", k, err)
			}
			out = append(out, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// seqKey encodes a sequence number as an 8-byte big-endian key for sorted
// storage.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
