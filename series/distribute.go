package series

import (
	"context"
	"fmt"

	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/safemath"

	"github.com/bitfsorg/libbond-go/bond"
)

// Distribute accepts a revenue payment from the issuer or the router and
// accrues it to the reward-per-unit accumulator. The payment is settled
// from the caller's currency account into the series account before any
// accounting commits, so a failed settlement leaves no trace.
//
// A payment too small to be attributable to any single unit
// (amount*Scale/supply == 0) is rejected rather than silently absorbed.
func (s *Series) Distribute(ctx context.Context, caller bond.Address, amount uint64) error {
	if err := s.mu.Enter(); err != nil {
		return err
	}
	defer s.mu.Exit()

	if caller != s.terms.Issuer && caller != s.terms.Router {
		return fmt.Errorf("%w: %s", ErrNotDistributor, caller)
	}
	if s.matured || !s.clock.Now().Before(s.terms.Maturity) {
		return ErrDistributionAfterMaturity
	}
	if amount < s.terms.MinDistribution {
		return fmt.Errorf("%w: %d < %d", ErrBelowMinDistribution, amount, s.terms.MinDistribution)
	}
	supply := s.units.TotalSupply()
	if supply == 0 {
		return ErrNoSupply
	}

	delta, err := safemath.ScaledDelta(amount, supply)
	if err != nil {
		return err
	}
	if delta.Sign() == 0 {
		return fmt.Errorf("%w: %d over supply %d", ErrUnattributableAmount, amount, supply)
	}
	newTotal, err := safemath.CheckedAdd(s.totalReceived, amount)
	if err != nil {
		return err
	}

	// Settle before committing: a failed inbound transfer aborts the whole
	// distribution with zero state change.
	if err := s.payments.Transfer(ctx, caller, s.terms.Account, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	s.accumulator.Add(s.accumulator, delta)
	s.totalReceived = newTotal
	s.emit(events.TypeDistribution, caller, amount, "")

	if s.reporter != nil {
		if err := s.reporter.RecordDistribution(s.id, amount); err != nil {
			s.log.Warn("series: reputation notify failed", "series", s.id, "err", err)
			s.emit(events.TypeDiagnostic, caller, amount, "reputation notify: "+err.Error())
		}
	}
	return nil
}
