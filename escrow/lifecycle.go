package escrow

import (
	"context"
	"fmt"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/series"
)

// DepositPrincipal escrows the principal and activates the series, minting
// the fixed supply to the issuer. Exactly-once: only the issuer may
// deposit, only before the deposit deadline, only the exact principal
// amount, and only from StatePendingPrincipal.
func (e *Escrow) DepositPrincipal(ctx context.Context, caller bond.Address, amount uint64) error {
	if err := e.mu.Enter(); err != nil {
		return err
	}
	defer e.mu.Exit()

	switch e.state {
	case StatePendingPrincipal:
	case StateDefaulted:
		return ErrSeriesDefaulted
	default:
		return ErrPrincipalAlreadyDeposited
	}
	if caller != e.bond.Terms().Issuer {
		return fmt.Errorf("%w: %s", ErrNotIssuer, caller)
	}
	if !e.clock.Now().Before(e.depositDeadline) {
		return ErrDepositDeadlinePassed
	}
	if amount != e.principal {
		return fmt.Errorf("%w: got %d, principal is %d", ErrWrongPrincipalAmount, amount, e.principal)
	}

	// Settle before committing: a failed deposit transfer leaves the
	// escrow pending with nothing minted.
	if err := e.payments.Transfer(ctx, caller, e.bond.Terms().Account, amount); err != nil {
		return fmt.Errorf("%w: %v", series.ErrSettlementFailed, err)
	}
	if err := e.bond.MintSupply(caller); err != nil {
		return err
	}

	e.state = StateActive
	e.emit(events.TypePrincipalDeposited, caller, amount, "")
	return nil
}

// DeclareDefault marks the series defaulted. Callable by anyone once the
// deposit deadline has passed with no principal escrowed. The reputation
// registry is notified best-effort; a notification failure is logged and
// never blocks the default determination.
func (e *Escrow) DeclareDefault(caller bond.Address) error {
	if err := e.mu.Enter(); err != nil {
		return err
	}
	defer e.mu.Exit()

	if e.state != StatePendingPrincipal {
		return fmt.Errorf("%w: cannot default from %s", ErrDefaultUnavailable, e.state)
	}
	if e.clock.Now().Before(e.depositDeadline) {
		return ErrDeadlineNotReached
	}

	e.state = StateDefaulted
	e.emit(events.TypeDefaulted, caller, 0, "")

	if e.defaults != nil {
		if err := e.defaults.ReportDefault(e.bond.ID(), e.bond.Terms().Issuer); err != nil {
			e.log.Warn("escrow: default notify failed", "series", e.bond.ID(), "err", err)
			e.emit(events.TypeDiagnostic, caller, 0, "default notify: "+err.Error())
		}
	}
	return nil
}

// MatureSeries advances an active escrow to StateMatured. Callable by
// anyone once the maturity timestamp has passed.
func (e *Escrow) MatureSeries(caller bond.Address) error {
	if err := e.mu.Enter(); err != nil {
		return err
	}
	defer e.mu.Exit()
	return e.matureLocked(caller)
}

// matureLocked performs the Active -> Matured transition under the guard.
func (e *Escrow) matureLocked(caller bond.Address) error {
	switch e.state {
	case StateActive:
	case StateMatured:
		return series.ErrAlreadyMatured
	default:
		return fmt.Errorf("%w: cannot mature from %s", ErrMaturityUnavailable, e.state)
	}
	if err := e.bond.Mature(); err != nil {
		return err
	}
	e.state = StateMatured
	return nil
}
