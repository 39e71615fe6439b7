// Package payments defines the settlement boundary through which currency
// units enter and leave bond components. Every outward transfer crosses
// into code outside this library's control, so callers commit any invariant
// that must survive re-entry before calling through this interface.
package payments

import (
	"context"

	"github.com/bitfsorg/libbond-go/bond"
)

// Service moves currency units between accounts. Implementations settle
// against whatever holds the real funds (a chain wallet, a custodial bank,
// the in-memory test bank).
type Service interface {
	// Transfer moves amount currency units from one account to another.
	// A failed transfer must move nothing.
	Transfer(ctx context.Context, from, to bond.Address, amount uint64) error

	// BalanceOf returns the account's current currency balance.
	BalanceOf(ctx context.Context, account bond.Address) (uint64, error)
}

// MockService is a test double for Service. All function fields must be set
// before the corresponding method is called.
type MockService struct {
	TransferFn  func(ctx context.Context, from, to bond.Address, amount uint64) error
	BalanceOfFn func(ctx context.Context, account bond.Address) (uint64, error)
}

func (m *MockService) Transfer(ctx context.Context, from, to bond.Address, amount uint64) error {
	return m.TransferFn(ctx, from, to, amount)
}

func (m *MockService) BalanceOf(ctx context.Context, account bond.Address) (uint64, error) {
	return m.BalanceOfFn(ctx, account)
}
