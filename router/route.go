package router

import (
	"context"
	"fmt"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/safemath"
)

// RouteStatus describes the outcome of a route attempt.
type RouteStatus uint8

const (
	// StatusRouted means the pending balance was split and distributed.
	StatusRouted RouteStatus = iota

	// StatusDeferred means the holders' share was below the series
	// minimum; funds stay pending to accumulate across small payments.
	StatusDeferred

	// StatusCleared means the series no longer accepts distributions; the
	// pending balance was written off as no longer owed.
	StatusCleared
)

// RouteResult reports what a successful route attempt did.
type RouteResult struct {
	Status       RouteStatus
	SeriesAmount uint64
	IssuerAmount uint64
}

// Receive takes custody of inbound revenue. The value always lands in the
// pending-to-route balance; nothing is ever routed implicitly.
func (r *Router) Receive(ctx context.Context, payer bond.Address, amount uint64) error {
	if err := r.mu.Enter(); err != nil {
		return err
	}
	defer r.mu.Exit()

	if amount == 0 {
		return ErrZeroAmount
	}
	newPending, err := safemath.CheckedAdd(r.pending, amount)
	if err != nil {
		return err
	}
	newReceived, err := safemath.CheckedAdd(r.totalReceived, amount)
	if err != nil {
		return err
	}

	if err := r.payments.Transfer(ctx, payer, r.account, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	r.pending = newPending
	r.totalReceived = newReceived
	r.emit(events.TypeReceived, payer, amount, "")
	return nil
}

// Route reconciles the pending balance against the bound series:
//
//  1. A dead (inactive or matured) series clears the pending balance and
//     counts a failure with reason "inactive".
//  2. The holders' share is ceil(pending*shareBps/10000) — rounded up, in
//     favor of the holders, never the issuer.
//  3. A share below the series minimum defers with no state change.
//  4. Otherwise the pending balance is cleared before the external
//     distribute call; on any failure it is restored exactly to its
//     pre-attempt value and the failure counter advances by one, making
//     the attempt a no-op from the perspective of total funds owed.
func (r *Router) Route(ctx context.Context) (RouteResult, error) {
	if err := r.mu.Enter(); err != nil {
		return RouteResult{}, err
	}
	defer r.mu.Exit()

	if !r.bound {
		return RouteResult{}, ErrNotBound
	}
	if r.pending == 0 {
		return RouteResult{}, ErrNothingPending
	}

	if !r.target.Active() {
		written := r.pending
		r.pending = 0
		r.failCount++
		r.lastFailReason = reasonInactive
		r.emit(events.TypeRouteFailed, bond.ZeroAddress, written, reasonInactive)
		return RouteResult{Status: StatusCleared}, nil
	}

	seriesAmount, err := safemath.CeilDiv(r.pending, uint64(r.shareBps), 10000)
	if err != nil {
		return RouteResult{}, err
	}
	issuerAmount := r.pending - seriesAmount

	if seriesAmount < r.target.MinDistribution() {
		r.emit(events.TypeRouteDeferred, bond.ZeroAddress, seriesAmount, "below series minimum")
		return RouteResult{Status: StatusDeferred, SeriesAmount: seriesAmount, IssuerAmount: issuerAmount}, nil
	}

	newRouted, err := safemath.CheckedAdd(r.totalRouted, seriesAmount)
	if err != nil {
		return RouteResult{}, err
	}

	// Checks-effects-interactions: clear pending before crossing into the
	// series, restore it exactly on failure.
	pre := r.pending
	r.pending = 0
	if err := r.target.Distribute(ctx, r.account, seriesAmount); err != nil {
		r.pending = pre
		r.failCount++
		r.lastFailReason = err.Error()
		r.emit(events.TypeRouteFailed, bond.ZeroAddress, seriesAmount, err.Error())
		return RouteResult{}, fmt.Errorf("%w: %v", ErrRouteFailed, err)
	}

	r.totalRouted = newRouted
	r.emit(events.TypeRouted, bond.ZeroAddress, seriesAmount, "")
	return RouteResult{Status: StatusRouted, SeriesAmount: seriesAmount, IssuerAmount: issuerAmount}, nil
}

// reasonInactive is the captured failure reason for a dead series.
const reasonInactive = "inactive"
