package store

import "errors"

var (
	// ErrNotFound indicates no snapshot exists under the given key.
	ErrNotFound = errors.New("store: snapshot not found")
)
