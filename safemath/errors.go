package safemath

import (
	"fmt"

	"github.com/bitfsorg/libbond-go/fault"
)

var (
	// ErrOverflow indicates a result does not fit in uint64.
	ErrOverflow = fmt.Errorf("safemath: %w: overflow", fault.ErrArithmetic)

	// ErrUnderflow indicates a subtraction below zero.
	ErrUnderflow = fmt.Errorf("safemath: %w: underflow", fault.ErrArithmetic)

	// ErrDivisionByZero indicates a zero divisor.
	ErrDivisionByZero = fmt.Errorf("safemath: %w: division by zero", fault.ErrArithmetic)
)
