package ledger

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrAlreadyMinted indicates the fixed supply was already created.
	ErrAlreadyMinted = fmt.Errorf("ledger: %w: supply already minted", fault.ErrState)

	// ErrZeroAmount indicates a zero-unit mint, burn, or transfer.
	ErrZeroAmount = fmt.Errorf("ledger: %w: zero amount", fault.ErrValidation)

	// ErrInvalidHolder indicates an unusable holder address.
	ErrInvalidHolder = fmt.Errorf("ledger: %w: invalid holder", fault.ErrValidation)

	// ErrInsufficientBalance indicates the holder does not hold enough units.
	ErrInsufficientBalance = fmt.Errorf("ledger: %w: insufficient balance", fault.ErrValidation)
)
