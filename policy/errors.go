package policy

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrShareOutOfBounds indicates the share fraction violates the
	// hardcoded bounds.
	ErrShareOutOfBounds = fmt.Errorf("policy: %w: share fraction out of bounds", fault.ErrValidation)

	// ErrTermOutOfBounds indicates the term violates the duration bounds.
	ErrTermOutOfBounds = fmt.Errorf("policy: %w: term out of bounds", fault.ErrValidation)

	// ErrSupplyTooSmall indicates the supply is under the hardcoded floor.
	ErrSupplyTooSmall = fmt.Errorf("policy: %w: total supply too small", fault.ErrValidation)

	// ErrDistributionTooSmall indicates the minimum distribution is under
	// the hardcoded floor.
	ErrDistributionTooSmall = fmt.Errorf("policy: %w: minimum distribution too small", fault.ErrValidation)

	// ErrPrincipalTooSmall indicates the principal is under the hardcoded
	// floor.
	ErrPrincipalTooSmall = fmt.Errorf("policy: %w: principal too small", fault.ErrValidation)

	// ErrDepositWindowOutOfBounds indicates the deposit window violates
	// the hardcoded bounds.
	ErrDepositWindowOutOfBounds = fmt.Errorf("policy: %w: deposit window out of bounds", fault.ErrValidation)
)
