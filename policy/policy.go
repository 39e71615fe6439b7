// Package policy defines the hardcoded safety-limit layer and the
// pluggable policy interfaces consulted at series creation. The hardcoded
// limits are checked first and cannot be loosened: a plugged-in policy is
// invoked strictly after them and can only cause rejection, never
// approval.
package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfsorg/libbond-go/bond"
)

// CreateRequest is the creation context shown to the limit layer and to
// pluggable policies. Principal and DepositWindow are zero for the plain
// (non-escrow) variant.
type CreateRequest struct {
	Caller          bond.Address
	Issuer          bond.Address
	ShareBps        uint32
	TotalSupply     uint64
	MinDistribution uint64
	Term            time.Duration
	Principal       uint64
	MinPurchase     uint64
	DepositWindow   time.Duration
	Escrow          bool
}

// Limits are the hardcoded bounds applied before any pluggable policy.
type Limits struct {
	MaxShareBps      uint32
	MinTerm          time.Duration
	MaxTerm          time.Duration
	MinSupply        uint64
	MinPrincipal     uint64
	MinDistribution  uint64
	MinDepositWindow time.Duration
	MaxDepositWindow time.Duration
}

// DefaultLimits returns the library defaults: at most a 50% holder share,
// terms between 7 days and 10 years, and a deposit window between 1 and 30
// days.
func DefaultLimits() Limits {
	return Limits{
		MaxShareBps:      5000,
		MinTerm:          7 * 24 * time.Hour,
		MaxTerm:          10 * 365 * 24 * time.Hour,
		MinSupply:        1000,
		MinPrincipal:     1000,
		MinDistribution:  1,
		MinDepositWindow: 24 * time.Hour,
		MaxDepositWindow: 30 * 24 * time.Hour,
	}
}

// Check validates a creation request against the hardcoded bounds.
func (l Limits) Check(req CreateRequest) error {
	if req.ShareBps == 0 || req.ShareBps > l.MaxShareBps {
		return fmt.Errorf("%w: share %d bps, max %d", ErrShareOutOfBounds, req.ShareBps, l.MaxShareBps)
	}
	if req.Term < l.MinTerm || req.Term > l.MaxTerm {
		return fmt.Errorf("%w: term %s", ErrTermOutOfBounds, req.Term)
	}
	if req.TotalSupply < l.MinSupply {
		return fmt.Errorf("%w: supply %d, min %d", ErrSupplyTooSmall, req.TotalSupply, l.MinSupply)
	}
	if req.MinDistribution < l.MinDistribution {
		return fmt.Errorf("%w: min distribution %d, floor %d", ErrDistributionTooSmall, req.MinDistribution, l.MinDistribution)
	}
	if req.Escrow {
		if req.Principal < l.MinPrincipal {
			return fmt.Errorf("%w: principal %d, min %d", ErrPrincipalTooSmall, req.Principal, l.MinPrincipal)
		}
		if req.DepositWindow < l.MinDepositWindow || req.DepositWindow > l.MaxDepositWindow {
			return fmt.Errorf("%w: window %s", ErrDepositWindowOutOfBounds, req.DepositWindow)
		}
	}
	return nil
}

// FeePolicy quotes the one-time creation fee. An error aborts the creation
// atomically.
type FeePolicy interface {
	Quote(ctx context.Context, req CreateRequest) (fee uint64, receiver bond.Address, err error)
}

// SafetyPolicy may reject a creation request. It is invoked strictly after
// the hardcoded limits; it can only restrict further, never loosen.
type SafetyPolicy interface {
	Validate(ctx context.Context, req CreateRequest) error
}

// AccessPolicy gates who may create series. No configured policy means
// permissionless creation.
type AccessPolicy interface {
	CanCreate(ctx context.Context, caller bond.Address) (bool, error)
}
