// Package guard provides the per-instance call-depth guard protecting every
// state-mutating entry point. Execution is fully serialized, so the guard is
// a plain flag: a nested re-entry into a guarded entry point from within an
// outward call is rejected rather than blocked.
package guard

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

// ErrReentrantCall indicates a guarded entry point was re-entered from
// within an outward call it made.
var ErrReentrantCall = fmt.Errorf("guard: %w: reentrant call", fault.ErrState)

// Guard is a non-reentrant entry lock scoped to one component instance.
// The zero value is ready to use.
type Guard struct {
	entered bool
}

// Enter marks the guarded section entered. Callers must pair a successful
// Enter with a deferred Exit.
func (g *Guard) Enter() error {
	if g.entered {
		return ErrReentrantCall
	}
	g.entered = true
	return nil
}

// Exit clears the guard.
func (g *Guard) Exit() { g.entered = false }
