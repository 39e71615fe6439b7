package series

import (
	"context"
	"fmt"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
)

// Claim pays out the holder's accrued revenue and returns the amount
// transferred. The outward settlement happens before the unclaimed balance
// is cleared: a failed transfer aborts the claim with the balance intact,
// and the call-depth guard rejects any reentrant claim issued from within
// the settlement call.
func (s *Series) Claim(ctx context.Context, holder bond.Address) (uint64, error) {
	if err := s.mu.Enter(); err != nil {
		return 0, err
	}
	defer s.mu.Exit()

	if err := s.updateRewards(holder); err != nil {
		return 0, err
	}
	amount := s.unclaimed[holder]
	if amount == 0 {
		return 0, ErrNothingToClaim
	}

	if err := s.payments.Transfer(ctx, s.terms.Account, holder, amount); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	delete(s.unclaimed, holder)
	s.emit(events.TypeClaim, holder, amount, "")
	return amount, nil
}
