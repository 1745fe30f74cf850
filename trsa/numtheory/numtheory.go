package numtheory

import (
	"errors"
	"math/bits"
)

var ErrInvalidArguments = errors.New("numtheory: invalid modular exponentiation arguments")

// GCD returns the greatest common divisor of a and b.
// Callers pass a non-negative a and a positive b; other inputs are unspecified.
func GCD(a, b int64) int64 {
	for a != 0 {
		a, b = b%a, a
	}
	return b
}

// ExtendedEuclid returns the coefficient y of a*x + b*y = gcd(a, b).
// When gcd(a, b) == 1, y is the inverse of b modulo a. It may be negative;
// the caller folds it into range.
func ExtendedEuclid(a, b int64) int64 {
	var (
		g    = b
		x, y = int64(0), int64(1)
		u, v = int64(1), int64(0)
	)
	for a != 0 {
		q, r := g/a, g%a
		m, n := x-u*q, y-v*q
		g, a = a, r
		x, y = u, v
		u, v = m, n
	}
	return y
}

// ModPow computes base^exponent mod modulus.
//
// It fails with ErrInvalidArguments when base or exponent is negative or the modulus is not
// positive. An exponent of zero yields 1 regardless of the modulus.
func ModPow(base, exponent, modulus int64) (int64, error) {
	if base < 0 || exponent < 0 || modulus <= 0 {
		return 0, ErrInvalidArguments
	}
	if exponent == 0 {
		return 1, nil
	}

	m := uint64(modulus)
	b := uint64(base) % m
	result := uint64(1) % m
	for e := uint64(exponent); e > 0; e >>= 1 {
		if e&1 == 1 {
			result = mulMod(result, b, m)
		}
		b = mulMod(b, b, m)
	}
	return int64(result), nil
}

// mulMod returns a*b mod m without overflow. a and b must already be reduced mod m.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}
