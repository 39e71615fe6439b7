package escrow

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrZeroPrincipal indicates the config fixes a zero principal.
	ErrZeroPrincipal = fmt.Errorf("escrow: %w: zero principal", fault.ErrValidation)

	// ErrDeadlineAfterMaturity indicates the deposit deadline is not before
	// maturity.
	ErrDeadlineAfterMaturity = fmt.Errorf("escrow: %w: deposit deadline at or after maturity", fault.ErrValidation)

	// ErrNotIssuer indicates a privileged call from a non-issuer.
	ErrNotIssuer = fmt.Errorf("escrow: %w: caller is not the issuer", fault.ErrAuthorization)

	// ErrPrincipalAlreadyDeposited indicates a repeated deposit.
	ErrPrincipalAlreadyDeposited = fmt.Errorf("escrow: %w: principal already deposited", fault.ErrState)

	// ErrDepositDeadlinePassed indicates a deposit at or past the deadline.
	ErrDepositDeadlinePassed = fmt.Errorf("escrow: %w: deposit deadline passed", fault.ErrState)

	// ErrWrongPrincipalAmount indicates a deposit not equal to the
	// principal.
	ErrWrongPrincipalAmount = fmt.Errorf("escrow: %w: deposit must equal principal", fault.ErrValidation)

	// ErrSeriesDefaulted indicates the series defaulted; no deposits or
	// claims are ever possible.
	ErrSeriesDefaulted = fmt.Errorf("escrow: %w: series defaulted", fault.ErrState)

	// ErrDefaultUnavailable indicates default was requested outside
	// StatePendingPrincipal.
	ErrDefaultUnavailable = fmt.Errorf("escrow: %w: default unavailable", fault.ErrState)

	// ErrDeadlineNotReached indicates default was requested before the
	// deposit deadline.
	ErrDeadlineNotReached = fmt.Errorf("escrow: %w: deposit deadline not reached", fault.ErrState)

	// ErrMaturityUnavailable indicates maturity was requested outside
	// StateActive.
	ErrMaturityUnavailable = fmt.Errorf("escrow: %w: maturity unavailable", fault.ErrState)

	// ErrNotMatured indicates a principal claim before maturity.
	ErrNotMatured = fmt.Errorf("escrow: %w: not matured", fault.ErrState)

	// ErrNotActive indicates a distribution outside StateActive.
	ErrNotActive = fmt.Errorf("escrow: %w: not active", fault.ErrState)

	// ErrPrincipalClaimed indicates the holder already redeemed principal.
	ErrPrincipalClaimed = fmt.Errorf("escrow: %w: principal already claimed", fault.ErrState)

	// ErrNoHolding indicates the holder has no units to redeem against.
	ErrNoHolding = fmt.Errorf("escrow: %w: no holding", fault.ErrValidation)

	// ErrSupplyOutstanding indicates a dust sweep while units remain.
	ErrSupplyOutstanding = fmt.Errorf("escrow: %w: supply still outstanding", fault.ErrState)

	// ErrDustSwept indicates a repeated dust sweep.
	ErrDustSwept = fmt.Errorf("escrow: %w: dust already swept", fault.ErrState)

	// ErrBelowMinPurchase indicates a partial transfer under the minimum
	// purchase size.
	ErrBelowMinPurchase = fmt.Errorf("escrow: %w: below minimum purchase", fault.ErrValidation)
)
