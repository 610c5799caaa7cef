package keeper

import (
	"fmt"

	"cosmossdk.io/math"
)

// Checked arithmetic for pool accounting. Amounts are uint64 on the ledger;
// products are widened to math.Int so intermediates never wrap, and results
// are narrowed back with an explicit range check.

// SafeAddUint64 adds two uint64 values with overflow checking
func SafeAddUint64(a, b uint64) (uint64, error) {
	if a > (1<<64 - 1 - b) {
		return 0, fmt.Errorf("overflow: uint64 addition overflow")
	}
	return a + b, nil
}

// SafeSubUint64 subtracts b from a with underflow checking
func SafeSubUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("underflow: cannot subtract %d from %d", b, a)
	}
	return a - b, nil
}

// SafeMulDivUint64 computes floor(a * b / c) with a widened intermediate.
func SafeMulDivUint64(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, fmt.Errorf("division by zero")
	}

	product, err := math.NewIntFromUint64(a).SafeMul(math.NewIntFromUint64(b))
	if err != nil {
		return 0, fmt.Errorf("overflow in multiplication step: %w", err)
	}

	return narrowUint64(product.Quo(math.NewIntFromUint64(c)))
}

// narrowUint64 converts a widened result back to uint64.
func narrowUint64(v math.Int) (uint64, error) {
	if v.IsNegative() || !v.IsUint64() {
		return 0, fmt.Errorf("overflow: %s does not fit in uint64", v)
	}
	return v.Uint64(), nil
}

// SqrtProduct returns floor(sqrt(a * b)) using Newton's method on unsigned
// integers, so the result is identical on every platform.
func SqrtProduct(a, b uint64) (uint64, error) {
	n := math.NewUintFromBigInt(math.NewIntFromUint64(a).Mul(math.NewIntFromUint64(b)).BigInt())
	root := isqrt(n)
	if !root.BigInt().IsUint64() {
		return 0, fmt.Errorf("overflow: square root %s does not fit in uint64", root)
	}
	return root.Uint64(), nil
}

// isqrt returns the largest r such that r*r <= n.
func isqrt(n math.Uint) math.Uint {
	if n.IsZero() {
		return math.ZeroUint()
	}
	one := math.OneUint()
	two := math.NewUint(2)

	x := n
	y := x.Add(one).Quo(two)
	for y.LT(x) {
		x = y
		y = x.Add(n.Quo(x)).Quo(two)
	}
	return x
}
