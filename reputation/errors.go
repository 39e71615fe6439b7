package reputation

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrInvalidProtocol indicates a zero protocol address.
	ErrInvalidProtocol = fmt.Errorf("reputation: %w: invalid protocol address", fault.ErrValidation)

	// ErrSeriesRegistered indicates the series ID is already registered.
	ErrSeriesRegistered = fmt.Errorf("reputation: %w: series already registered", fault.ErrState)

	// ErrSeriesUnknown indicates the series ID was never registered.
	ErrSeriesUnknown = fmt.Errorf("reputation: %w: unknown series", fault.ErrValidation)

	// ErrReporterUnauthorized indicates the reporter may not record
	// distributions for the series.
	ErrReporterUnauthorized = fmt.Errorf("reputation: %w: reporter not authorized", fault.ErrAuthorization)

	// ErrSeriesInactive indicates the series was deactivated (defaulted).
	ErrSeriesInactive = fmt.Errorf("reputation: %w: series inactive", fault.ErrState)

	// ErrNoCadence indicates the series declared no expected cadence.
	ErrNoCadence = fmt.Errorf("reputation: %w: no cadence declared", fault.ErrState)

	// ErrNotLate indicates a lateness flag within the cadence window.
	ErrNotLate = fmt.Errorf("reputation: %w: series is not late", fault.ErrState)

	// ErrFlagRateLimited indicates a repeated lateness flag within one
	// cadence window.
	ErrFlagRateLimited = fmt.Errorf("reputation: %w: lateness already flagged this window", fault.ErrState)
)
