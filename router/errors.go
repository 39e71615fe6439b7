package router

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrMissingIssuer indicates the config lacks an issuer address.
	ErrMissingIssuer = fmt.Errorf("router: %w: missing issuer", fault.ErrValidation)

	// ErrMissingAccount indicates the config lacks a router account.
	ErrMissingAccount = fmt.Errorf("router: %w: missing router account", fault.ErrValidation)

	// ErrInvalidShareBps indicates the share fraction is outside (0, 10000].
	ErrInvalidShareBps = fmt.Errorf("router: %w: share basis points out of range", fault.ErrValidation)

	// ErrMissingPayments indicates the config lacks a payments service.
	ErrMissingPayments = fmt.Errorf("router: %w: missing payments service", fault.ErrValidation)

	// ErrAlreadyBound indicates a second series binding.
	ErrAlreadyBound = fmt.Errorf("router: %w: series already bound", fault.ErrState)

	// ErrNilTarget indicates a nil binding target.
	ErrNilTarget = fmt.Errorf("router: %w: nil target", fault.ErrValidation)

	// ErrNotBound indicates a route attempt before binding.
	ErrNotBound = fmt.Errorf("router: %w: no series bound", fault.ErrState)

	// ErrNothingPending indicates a route attempt with an empty pending
	// balance.
	ErrNothingPending = fmt.Errorf("router: %w: nothing pending to route", fault.ErrState)

	// ErrZeroAmount indicates a zero amount.
	ErrZeroAmount = fmt.Errorf("router: %w: zero amount", fault.ErrValidation)

	// ErrNotIssuer indicates a withdrawal by a non-issuer.
	ErrNotIssuer = fmt.Errorf("router: %w: caller is not the issuer", fault.ErrAuthorization)

	// ErrNotOperator indicates an emergency withdrawal by a non-operator.
	ErrNotOperator = fmt.Errorf("router: %w: caller is not the operator", fault.ErrAuthorization)

	// ErrPendingOutstanding indicates an issuer withdrawal while funds are
	// pending to route.
	ErrPendingOutstanding = fmt.Errorf("router: %w: pending balance outstanding", fault.ErrState)

	// ErrInsufficientBalance indicates a withdrawal above the movable
	// balance.
	ErrInsufficientBalance = fmt.Errorf("router: %w: insufficient balance", fault.ErrValidation)

	// ErrSettlementFailed indicates the currency settlement call failed.
	ErrSettlementFailed = fmt.Errorf("router: %w: settlement failed", fault.ErrCollaborator)

	// ErrRouteFailed indicates the series rejected the distribution; the
	// pending balance was restored.
	ErrRouteFailed = fmt.Errorf("router: %w: route attempt failed", fault.ErrCollaborator)
)
