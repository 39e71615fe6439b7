package events

import "errors"

var (
	// ErrNilEvent indicates a nil event was appended.
	ErrNilEvent = errors.New("events: nil event")
)
