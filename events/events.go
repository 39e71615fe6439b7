// Package events implements the append-only audit log. Every externally
// significant action (creation, distribution, claim, maturity, default,
// routing attempts, withdrawals, best-effort failures) is recorded as an
// event; events are never mutated after emission.
package events

import (
	"sync"
	"time"

	"github.com/bitfsorg/libbond-go/bond"
)

// Type discriminates audit events.
type Type string

const (
	TypeSeriesCreated      Type = "series_created"
	TypeDistribution       Type = "distribution"
	TypeClaim              Type = "claim"
	TypeTransfer           Type = "transfer"
	TypeMatured            Type = "matured"
	TypePrincipalDeposited Type = "principal_deposited"
	TypePrincipalClaimed   Type = "principal_claimed"
	TypeDefaulted          Type = "defaulted"
	TypeDustSwept          Type = "dust_swept"
	TypeReceived           Type = "received"
	TypeRouted             Type = "routed"
	TypeRouteDeferred      Type = "route_deferred"
	TypeRouteFailed        Type = "route_failed"
	TypeWithdrawal         Type = "withdrawal"
	TypeDiagnostic         Type = "diagnostic"
)

// Event is one audit log entry. Seq is assigned by the log on append and is
// strictly increasing within one log.
type Event struct {
	Seq    uint64        `json:"seq"`
	Time   time.Time     `json:"time"`
	Type   Type          `json:"type"`
	Series bond.SeriesID `json:"series"`
	Actor  bond.Address  `json:"actor,omitempty"`
	Amount uint64        `json:"amount,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// Log is an append-only event sink.
type Log interface {
	// Append records the event, assigning its sequence number.
	Append(ev *Event) error

	// Events returns all recorded events in append order.
	Events() ([]Event, error)
}

// Emit appends ev to log, tolerating a nil log. The audit log is a
// best-effort collaborator: an append failure must never abort the
// financial operation that produced the event, so Emit reports but the
// callers only log the returned error.
func Emit(log Log, ev Event) error {
	if log == nil {
		return nil
	}
	return log.Append(&ev)
}

// MemLog is an in-memory Log for tests and single-process use.
type MemLog struct {
	mu     sync.Mutex
	nextSq uint64
	events []Event
}

// NewMemLog creates an empty in-memory log.
func NewMemLog() *MemLog {
	return &MemLog{nextSq: 1}
}

// Append records the event.
func (l *MemLog) Append(ev *Event) error {
	if ev == nil {
		return ErrNilEvent
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	ev.Seq = l.nextSq
	l.nextSq++
	l.events = append(l.events, *ev)
	return nil
}

// Events returns all recorded events in append order.
func (l *MemLog) Events() ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out, nil
}

// OfType filters events by type, preserving order.
func OfType(evs []Event, t Type) []Event {
	var out []Event
	for _, ev := range evs {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
