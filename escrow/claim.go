package escrow

import (
	"context"
	"fmt"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/safemath"
	"github.com/bitfsorg/libbond-go/series"
)

// ClaimPrincipal redeems the holder's proportional principal share,
// burning the holder's full balance against replay. A claim arriving after
// the maturity timestamp but before an explicit MatureSeries call matures
// the escrow lazily first, so funds are never claimable under a stale
// state flag.
//
// The share is principal*balance/totalSupply, floored; rounding residue
// accumulates as dust sweepable by the issuer once all supply is burned.
func (e *Escrow) ClaimPrincipal(ctx context.Context, holder bond.Address) (uint64, error) {
	if err := e.mu.Enter(); err != nil {
		return 0, err
	}
	defer e.mu.Exit()

	switch e.state {
	case StateMatured:
	case StateActive:
		if e.clock.Now().Before(e.bond.Terms().Maturity) {
			return 0, ErrNotMatured
		}
		if err := e.matureLocked(holder); err != nil {
			return 0, err
		}
	case StateDefaulted:
		return 0, ErrSeriesDefaulted
	default:
		return 0, ErrNotMatured
	}

	if e.principalClaimed[holder] {
		return 0, ErrPrincipalClaimed
	}
	balance := e.bond.BalanceOf(holder)
	if balance == 0 {
		return 0, ErrNoHolding
	}

	share, err := safemath.MulDiv(e.principal, balance, e.bond.Terms().TotalSupply)
	if err != nil {
		return 0, err
	}
	newTotal, err := safemath.CheckedAdd(e.totalPrincipalClaimed, share)
	if err != nil {
		return 0, err
	}

	// Settle before committing; a dustier-than-one-unit share burns the
	// holding without a transfer.
	if share > 0 {
		if err := e.payments.Transfer(ctx, e.bond.Terms().Account, holder, share); err != nil {
			return 0, fmt.Errorf("%w: %v", series.ErrSettlementFailed, err)
		}
	}
	if err := e.bond.Burn(holder, balance); err != nil {
		return 0, err
	}

	e.principalClaimed[holder] = true
	e.totalPrincipalClaimed = newTotal
	e.emit(events.TypePrincipalClaimed, holder, share, "")
	return share, nil
}

// SweepDust sends the issuer the rounding residue left after all principal
// claims. Only the issuer may sweep, only once, and only after every unit
// has been burned.
func (e *Escrow) SweepDust(ctx context.Context, caller bond.Address) (uint64, error) {
	if err := e.mu.Enter(); err != nil {
		return 0, err
	}
	defer e.mu.Exit()

	if e.state != StateMatured {
		return 0, ErrNotMatured
	}
	if caller != e.bond.Terms().Issuer {
		return 0, fmt.Errorf("%w: %s", ErrNotIssuer, caller)
	}
	if e.bond.Supply() != 0 {
		return 0, ErrSupplyOutstanding
	}
	if e.dustSwept {
		return 0, ErrDustSwept
	}

	dust, err := safemath.CheckedSub(e.principal, e.totalPrincipalClaimed)
	if err != nil {
		return 0, err
	}
	if dust > 0 {
		if err := e.payments.Transfer(ctx, e.bond.Terms().Account, caller, dust); err != nil {
			return 0, fmt.Errorf("%w: %v", series.ErrSettlementFailed, err)
		}
	}
	e.dustSwept = true
	e.emit(events.TypeDustSwept, caller, dust, "")
	return dust, nil
}

// Distribute forwards a revenue payment to the underlying series. Only an
// active escrow distributes.
func (e *Escrow) Distribute(ctx context.Context, caller bond.Address, amount uint64) error {
	if e.state != StateActive {
		return fmt.Errorf("%w: cannot distribute in %s", ErrNotActive, e.state)
	}
	return e.bond.Distribute(ctx, caller, amount)
}

// Claim pays out the holder's accrued revenue share.
func (e *Escrow) Claim(ctx context.Context, holder bond.Address) (uint64, error) {
	return e.bond.Claim(ctx, holder)
}

// Transfer moves units between holders, enforcing the minimum purchase
// floor: a partial transfer below MinPurchase is rejected, a full exit is
// always allowed.
func (e *Escrow) Transfer(from, to bond.Address, amount uint64) error {
	if amount < e.minPurchase && amount != e.bond.BalanceOf(from) {
		return fmt.Errorf("%w: %d < %d", ErrBelowMinPurchase, amount, e.minPurchase)
	}
	return e.bond.Transfer(from, to, amount)
}
