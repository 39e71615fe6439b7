package factory

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrMissingPayments indicates the config lacks a payments service.
	ErrMissingPayments = fmt.Errorf("factory: %w: missing payments service", fault.ErrValidation)

	// ErrMissingIssuer indicates a creation request without an issuer.
	ErrMissingIssuer = fmt.Errorf("factory: %w: missing issuer", fault.ErrValidation)

	// ErrCreationDenied indicates the access policy denied the caller.
	ErrCreationDenied = fmt.Errorf("factory: %w: creation denied", fault.ErrAuthorization)

	// ErrSafetyRejected indicates the pluggable safety policy rejected the
	// request.
	ErrSafetyRejected = fmt.Errorf("factory: %w: safety policy rejected", fault.ErrValidation)

	// ErrPolicyFailed indicates a pluggable policy call itself failed;
	// creation aborts atomically.
	ErrPolicyFailed = fmt.Errorf("factory: %w: policy call failed", fault.ErrCollaborator)

	// ErrFeeFailed indicates the creation fee could not be settled.
	ErrFeeFailed = fmt.Errorf("factory: %w: fee settlement failed", fault.ErrCollaborator)

	// ErrNonceSeed indicates the identity nonce could not be seeded from
	// the system entropy source.
	ErrNonceSeed = fmt.Errorf("factory: %w: entropy unavailable", fault.ErrCollaborator)
)
