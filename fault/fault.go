// Package fault defines the error taxonomy shared by every component.
// Package-level sentinels elsewhere wrap exactly one of these kinds so
// callers can discriminate rejections with errors.Is without depending on
// message text.
package fault

import "errors"

var (
	// ErrValidation indicates malformed construction or call arguments.
	ErrValidation = errors.New("validation error")

	// ErrAuthorization indicates the wrong caller for a privileged action.
	ErrAuthorization = errors.New("authorization error")

	// ErrState indicates an operation invalid for the current lifecycle state.
	ErrState = errors.New("state error")

	// ErrArithmetic indicates overflow, underflow, or a result that would
	// round to zero. Arithmetic faults always abort, never truncate or wrap.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrCollaborator indicates a failure in an external collaborator.
	// Core-critical callees abort the whole operation with this kind;
	// best-effort callees surface it as a diagnostic event instead.
	ErrCollaborator = errors.New("external collaborator failure")
)
