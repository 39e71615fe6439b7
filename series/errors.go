package series

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrMissingID indicates the config lacks a series ID.
	ErrMissingID = fmt.Errorf("series: %w: missing series id", fault.ErrValidation)

	// ErrMissingPayments indicates the config lacks a payments service.
	ErrMissingPayments = fmt.Errorf("series: %w: missing payments service", fault.ErrValidation)

	// ErrMissingIssuer indicates the terms lack an issuer address.
	ErrMissingIssuer = fmt.Errorf("series: %w: missing issuer", fault.ErrValidation)

	// ErrMissingAccount indicates the terms lack a series currency account.
	ErrMissingAccount = fmt.Errorf("series: %w: missing series account", fault.ErrValidation)

	// ErrZeroSupply indicates the terms fix a zero total supply.
	ErrZeroSupply = fmt.Errorf("series: %w: zero total supply", fault.ErrValidation)

	// ErrInvalidShareBps indicates the share fraction is outside (0, 10000].
	ErrInvalidShareBps = fmt.Errorf("series: %w: share basis points out of range", fault.ErrValidation)

	// ErrNotDistributor indicates the caller is neither issuer nor router.
	ErrNotDistributor = fmt.Errorf("series: %w: caller may not distribute", fault.ErrAuthorization)

	// ErrDistributionAfterMaturity indicates a distribution at or past
	// maturity.
	ErrDistributionAfterMaturity = fmt.Errorf("series: %w: series is matured", fault.ErrState)

	// ErrBelowMinDistribution indicates the amount is under the series
	// minimum.
	ErrBelowMinDistribution = fmt.Errorf("series: %w: below minimum distribution", fault.ErrValidation)

	// ErrNoSupply indicates no units have been minted yet.
	ErrNoSupply = fmt.Errorf("series: %w: no supply outstanding", fault.ErrState)

	// ErrUnattributableAmount indicates the payment is too small for its
	// per-unit accrual to round above zero.
	ErrUnattributableAmount = fmt.Errorf("series: %w: amount rounds to zero per unit", fault.ErrArithmetic)

	// ErrNothingToClaim indicates the holder has no accrued revenue.
	ErrNothingToClaim = fmt.Errorf("series: %w: nothing to claim", fault.ErrState)

	// ErrSettlementFailed indicates the currency settlement call failed.
	// The operation that triggered it is aborted wholesale.
	ErrSettlementFailed = fmt.Errorf("series: %w: settlement failed", fault.ErrCollaborator)

	// ErrAlreadyMatured indicates a repeated maturity transition.
	ErrAlreadyMatured = fmt.Errorf("series: %w: already matured", fault.ErrState)

	// ErrNotYetMature indicates maturity was requested before the maturity
	// timestamp.
	ErrNotYetMature = fmt.Errorf("series: %w: before maturity", fault.ErrState)
)
