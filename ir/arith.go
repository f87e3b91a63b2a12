package ir

import "math"

// Arithmetic helpers grounded on the original Halide IRMatch.h inline
// specializations (constant_fold_bin_op<Add|Sub|Mul>'s overflow checks,
// div_imp/mod_imp's Euclidean semantics, gcd), rewritten as ordinary Go
// functions over the widest representation of each numeric class.

// AddWouldOverflow reports whether a+b overflows a signed integer of the
// given bit width.
func AddWouldOverflow(bits int, a, b int64) bool {
	if bits >= 64 {
		return (b > 0 && a > int64Max(bits)-b) || (b < 0 && a < int64Min(bits)-b)
	}
	r := a + b
	return r < int64Min(bits) || r > int64Max(bits)
}

// SubWouldOverflow reports whether a-b overflows a signed integer of the
// given bit width.
func SubWouldOverflow(bits int, a, b int64) bool {
	if bits >= 64 {
		return (b < 0 && a > int64Max(bits)+b) || (b > 0 && a < int64Min(bits)+b)
	}
	r := a - b
	return r < int64Min(bits) || r > int64Max(bits)
}

// MulWouldOverflow reports whether a*b overflows a signed integer of the
// given bit width.
func MulWouldOverflow(bits int, a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	r := a * b
	if a != 0 && r/a != b {
		return true
	}
	return r < int64Min(bits) || r > int64Max(bits)
}

// MinSignedFor returns the most negative value representable by a
// signed integer of the given bit width.
func MinSignedFor(bits int) int64 { return int64Min(bits) }

func int64Max(bits int) int64 {
	if bits >= 64 {
		return 1<<63 - 1
	}
	return 1<<(bits-1) - 1
}

func int64Min(bits int) int64 {
	if bits >= 64 {
		return -1 << 63
	}
	return -1 << (bits - 1)
}

// ModImp is Euclidean integer remainder: the unique r in [0, |b|) such
// that a == DivImp(a, b)*b + r, regardless of the sign of a or b.
func ModImp(a, b int64) int64 {
	absB := b
	if absB < 0 {
		absB = -absB
	}
	r := a % absB
	if r < 0 {
		r += absB
	}
	return r
}

// DivImp is the matching Euclidean integer quotient: a == DivImp(a,b)*b + ModImp(a,b).
func DivImp(a, b int64) int64 {
	return (a - ModImp(a, b)) / b
}

// ModImpFloat is the float analogue of ModImp: the unique r in [0, |b|)
// such that a - r is an exact multiple of b.
func ModImpFloat(a, b float64) float64 {
	absB := b
	if absB < 0 {
		absB = -absB
	}
	r := math.Mod(a, absB)
	if r < 0 {
		r += absB
	}
	return r
}

// GCD computes the greatest common divisor of two signed integers,
// asserted by callers (GCDOp) to be of at least 32 bits.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
