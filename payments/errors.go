package payments

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrZeroTransfer indicates a zero-amount transfer.
	ErrZeroTransfer = fmt.Errorf("payments: %w: zero transfer", fault.ErrValidation)

	// ErrInsufficientFunds indicates the source account cannot cover the
	// transfer.
	ErrInsufficientFunds = fmt.Errorf("payments: %w: insufficient funds", fault.ErrValidation)
)
