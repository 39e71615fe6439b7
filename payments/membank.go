package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/safemath"
)

// MemBank is an in-memory Service holding currency balances per account.
// Used by tests and single-process simulations.
type MemBank struct {
	mu       sync.Mutex
	balances map[bond.Address]uint64
}

// Compile-time interface check.
var _ Service = (*MemBank)(nil)

// NewMemBank creates an empty bank.
func NewMemBank() *MemBank {
	return &MemBank{balances: make(map[bond.Address]uint64)}
}

// Deposit credits an account out of thin air. Test setup only.
func (b *MemBank) Deposit(account bond.Address, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[account] += amount
}

// Transfer moves amount currency units between accounts, atomically.
func (b *MemBank) Transfer(ctx context.Context, from, to bond.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroTransfer
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.balances[from]
	if bal < amount {
		return fmt.Errorf("%w: account %s holds %d, transfer %d", ErrInsufficientFunds, from, bal, amount)
	}
	if _, err := safemath.CheckedAdd(b.balances[to], amount); err != nil {
		return err
	}
	b.balances[from] = bal - amount
	b.balances[to] += amount
	return nil
}

// BalanceOf returns the account's current currency balance.
func (b *MemBank) BalanceOf(ctx context.Context, account bond.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account], nil
}
