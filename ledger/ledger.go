// Package ledger implements fungible unit bookkeeping for a single series:
// per-holder balances and total supply, with a hook invoked before every
// balance change so the owning component can settle reward accrual first.
//
// The supply is fixed at mint: it is created exactly once and only ever
// decreases afterwards, via burn on principal claim.
package ledger

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/safemath"
)

// Hook is invoked before every balance mutation, once per holder whose
// balance is about to change. A hook error aborts the mutation with no
// state change.
type Hook interface {
	BeforeBalanceChange(holder bond.Address) error
}

// Ledger tracks unit balances for one series.
type Ledger struct {
	supply   uint64
	minted   bool
	balances map[bond.Address]uint64
	hook     Hook
}

// New creates an empty ledger. hook may be nil.
func New(hook Hook) *Ledger {
	return &Ledger{balances: make(map[bond.Address]uint64), hook: hook}
}

// SetHook installs the balance-change hook. Used by two-phase construction
// when the hook owner is built after the ledger.
func (l *Ledger) SetHook(hook Hook) { l.hook = hook }

// Mint creates the fixed supply. It may be called exactly once.
func (l *Ledger) Mint(to bond.Address, amount uint64) error {
	if l.minted {
		return ErrAlreadyMinted
	}
	if to.IsZero() {
		return fmt.Errorf("%w: mint to zero address", ErrInvalidHolder)
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	if err := l.notify(to); err != nil {
		return err
	}
	l.minted = true
	l.supply = amount
	l.balances[to] = amount
	return nil
}

// Burn destroys amount units held by from, reducing the supply.
func (l *Ledger) Burn(from bond.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	bal := l.balances[from]
	if bal < amount {
		return fmt.Errorf("%w: balance %d, burn %d", ErrInsufficientBalance, bal, amount)
	}
	if err := l.notify(from); err != nil {
		return err
	}
	l.balances[from] = bal - amount
	if l.balances[from] == 0 {
		delete(l.balances, from)
	}
	l.supply -= amount
	return nil
}

// Transfer moves amount units from one holder to another. Both parties'
// hooks fire before any balance changes.
func (l *Ledger) Transfer(from, to bond.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if to.IsZero() {
		return fmt.Errorf("%w: transfer to zero address", ErrInvalidHolder)
	}
	if from == to {
		return fmt.Errorf("%w: self transfer", ErrInvalidHolder)
	}
	bal := l.balances[from]
	if bal < amount {
		return fmt.Errorf("%w: balance %d, transfer %d", ErrInsufficientBalance, bal, amount)
	}
	if _, err := safemath.CheckedAdd(l.balances[to], amount); err != nil {
		return err
	}
	if err := l.notify(from); err != nil {
		return err
	}
	if err := l.notify(to); err != nil {
		return err
	}
	l.balances[from] = bal - amount
	if l.balances[from] == 0 {
		delete(l.balances, from)
	}
	l.balances[to] += amount
	return nil
}

// BalanceOf returns the holder's current balance.
func (l *Ledger) BalanceOf(holder bond.Address) uint64 { return l.balances[holder] }

// TotalSupply returns the current (post-burn) supply.
func (l *Ledger) TotalSupply() uint64 { return l.supply }

// Minted reports whether the fixed supply has been created.
func (l *Ledger) Minted() bool { return l.minted }

// Holders returns the addresses with a nonzero balance, in no particular
// order.
func (l *Ledger) Holders() []bond.Address {
	out := make([]bond.Address, 0, len(l.balances))
	for addr := range l.balances {
		out = append(out, addr)
	}
	return out
}

// Balances returns a copy of the balance table, for snapshotting.
func (l *Ledger) Balances() map[bond.Address]uint64 {
	out := make(map[bond.Address]uint64, len(l.balances))
	for addr, bal := range l.balances {
		out[addr] = bal
	}
	return out
}

// Restore overwrites the ledger state from a snapshot.
func (l *Ledger) Restore(supply uint64, minted bool, balances map[bond.Address]uint64) {
	l.supply = supply
	l.minted = minted
	l.balances = make(map[bond.Address]uint64, len(balances))
	for addr, bal := range balances {
		l.balances[addr] = bal
	}
}

func (l *Ledger) notify(holder bond.Address) error {
	if l.hook == nil {
		return nil
	}
	return l.hook.BeforeBalanceChange(holder)
}
