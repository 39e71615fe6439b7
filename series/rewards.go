package series

import (
	"math/big"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/safemath"
)

// BeforeBalanceChange settles the holder's accrued rewards against the
// current accumulator before the ledger mutates the balance. Implements
// ledger.Hook.
func (s *Series) BeforeBalanceChange(holder bond.Address) error {
	return s.updateRewards(holder)
}

// updateRewards folds the accumulator advance since the holder's last
// settlement into the unclaimed balance. The step is claim-neutral: it
// never changes the holder's total claimable amount, only how it is split
// between the two bookkeeping terms.
func (s *Series) updateRewards(holder bond.Address) error {
	last, ok := s.lastSeen[holder]
	if !ok {
		last = new(big.Int)
	}
	diff := new(big.Int).Sub(s.accumulator, last)
	if diff.Sign() > 0 {
		earned, err := safemath.Earned(s.units.BalanceOf(holder), diff)
		if err != nil {
			return err
		}
		if earned > 0 {
			total, err := safemath.CheckedAdd(s.unclaimed[holder], earned)
			if err != nil {
				return err
			}
			s.unclaimed[holder] = total
		}
	}
	s.lastSeen[holder] = new(big.Int).Set(s.accumulator)
	return nil
}

// Claimable returns the holder's currently claimable revenue without
// mutating any state: the settled unclaimed balance plus the pending
// accrual since the holder's last settlement.
func (s *Series) Claimable(holder bond.Address) (uint64, error) {
	total := s.unclaimed[holder]
	last, ok := s.lastSeen[holder]
	if !ok {
		last = new(big.Int)
	}
	diff := new(big.Int).Sub(s.accumulator, last)
	if diff.Sign() <= 0 {
		return total, nil
	}
	pending, err := safemath.Earned(s.units.BalanceOf(holder), diff)
	if err != nil {
		return 0, err
	}
	return safemath.CheckedAdd(total, pending)
}
