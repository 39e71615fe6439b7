// Package safemath provides overflow-safe wide arithmetic for bond
// accounting. All intermediate products are computed on big integers and
// checked before narrowing back to uint64; an out-of-range result is an
// error, never a silent wrap.
package safemath

import (
	"fmt"
	"math"
	"math/big"
)

// Scale is the fixed scaling constant for the reward-per-unit accumulator
// (1e18, matching the smallest attributable revenue per ownership unit).
var Scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// CheckedAdd returns a+b or an error on overflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return a + b, nil
}

// CheckedSub returns a-b or an error on underflow.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", ErrUnderflow, a, b)
	}
	return a - b, nil
}

// MulDiv returns floor(a*b/den), computing the product at full width.
func MulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	out := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	out.Quo(out, new(big.Int).SetUint64(den))
	if out.Cmp(maxUint64) > 0 {
		return 0, fmt.Errorf("%w: %d * %d / %d", ErrOverflow, a, b, den)
	}
	return out.Uint64(), nil
}

// CeilDiv returns ceil(a*b/den), computing the product at full width.
// Rounding up favors the numerator's beneficiary.
func CeilDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	num := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	d := new(big.Int).SetUint64(den)
	out, rem := new(big.Int).QuoRem(num, d, new(big.Int))
	if rem.Sign() != 0 {
		out.Add(out, big.NewInt(1))
	}
	if out.Cmp(maxUint64) > 0 {
		return 0, fmt.Errorf("%w: ceil(%d * %d / %d)", ErrOverflow, a, b, den)
	}
	return out.Uint64(), nil
}

// ScaledDelta returns amount*Scale/supply as a big integer, the per-unit
// accumulator increment for a distribution. The result is zero when the
// amount is too small to be attributable to any single unit.
func ScaledDelta(amount, supply uint64) (*big.Int, error) {
	if supply == 0 {
		return nil, ErrDivisionByZero
	}
	out := new(big.Int).Mul(new(big.Int).SetUint64(amount), Scale)
	return out.Quo(out, new(big.Int).SetUint64(supply)), nil
}

// Earned returns balance*diff/Scale narrowed to uint64, where diff is the
// accumulator advance since the holder's last settlement. diff must be
// non-negative (the accumulator never decreases).
func Earned(balance uint64, diff *big.Int) (uint64, error) {
	if diff.Sign() < 0 {
		return 0, fmt.Errorf("%w: negative accumulator delta", ErrUnderflow)
	}
	out := new(big.Int).Mul(new(big.Int).SetUint64(balance), diff)
	out.Quo(out, Scale)
	if out.Cmp(maxUint64) > 0 {
		return 0, fmt.Errorf("%w: earned amount exceeds uint64", ErrOverflow)
	}
	return out.Uint64(), nil
}
