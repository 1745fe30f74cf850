package numtheory

import (
	"errors"
	"math/big"
	"testing"
)

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{12, 18, 6},
		{18, 12, 6},
		{17, 5, 1},
		{0, 7, 7},
		{7, 7, 7},
		{1 << 40, 1 << 20, 1 << 20},
		{2146848762, 257, 1},
	}
	for _, tt := range tests {
		got := GCD(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if tt.a%got != 0 || tt.b%got != 0 {
			t.Errorf("GCD(%d, %d) = %d does not divide both inputs", tt.a, tt.b, got)
		}
	}
}

func TestGCDIsLargestCommonDivisor(t *testing.T) {
	for a := int64(0); a <= 60; a++ {
		for b := int64(1); b <= 60; b++ {
			got := GCD(a, b)
			for d := got + 1; d <= b; d++ {
				if a%d == 0 && b%d == 0 {
					t.Fatalf("GCD(%d, %d) = %d, but %d divides both", a, b, got, d)
				}
			}
		}
	}
}

func TestExtendedEuclidInverse(t *testing.T) {
	const e = 257
	phis := []int64{
		(61 - 1) * (53 - 1),
		(1074067721 - 1) * (1074164417 - 1),
		(2146848763 - 1) * (1074300229 - 1),
	}
	for _, phi := range phis {
		if GCD(phi, e) != 1 {
			t.Fatalf("test vector %d is not coprime with %d", phi, e)
		}
		d := ExtendedEuclid(phi, e)
		for d < 0 {
			d += phi
		}
		if d >= phi {
			t.Fatalf("ExtendedEuclid(%d, %d) normalised to %d, outside [0, phi)", phi, e, d)
		}
		// e*d overflows int64 for the larger vectors, so check with math/big.
		prod := new(big.Int).Mul(big.NewInt(e), big.NewInt(d))
		if prod.Mod(prod, big.NewInt(phi)).Int64() != 1 {
			t.Fatalf("e*d mod phi != 1 for phi=%d d=%d", phi, d)
		}
	}
}

func TestExtendedEuclidBezout(t *testing.T) {
	// 240*(-9) + 46*47 = 2
	if y := ExtendedEuclid(240, 46); y != 47 {
		t.Fatalf("ExtendedEuclid(240, 46) = %d, want 47", y)
	}
	// 257*x + 3120*y = 1 for some integer x.
	y := ExtendedEuclid(257, 3120)
	if (1-3120*y)%257 != 0 {
		t.Fatalf("ExtendedEuclid(257, 3120) = %d does not satisfy Bezout", y)
	}
}

func TestModPow(t *testing.T) {
	tests := []struct {
		name                string
		base, exponent, mod int64
		want                int64
	}{
		{"simple", 2, 10, 1000, 24},
		{"zero_exponent", 5, 0, 13, 1},
		{"zero_exponent_unit_modulus", 5, 0, 1, 1},
		{"unit_exponent", 1234, 1, 1000, 234},
		{"unit_modulus", 9, 3, 1, 0},
		{"zero_base", 0, 5, 7, 0},
		{"fermat", 3, 100, 101, 1},
		{"odd_exponent", 7, 13, 11, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModPow(tt.base, tt.exponent, tt.mod)
			if err != nil {
				t.Fatalf("ModPow: %v", err)
			}
			if got != tt.want {
				t.Errorf("ModPow(%d, %d, %d) = %d, want %d", tt.base, tt.exponent, tt.mod, got, tt.want)
			}
		})
	}
}

func TestModPowInvalidArguments(t *testing.T) {
	tests := []struct {
		name                string
		base, exponent, mod int64
	}{
		{"negative_base", -1, 3, 7},
		{"negative_exponent", 2, -3, 7},
		{"zero_modulus", 2, 3, 0},
		{"negative_modulus", 2, 3, -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ModPow(tt.base, tt.exponent, tt.mod)
			if !errors.Is(err, ErrInvalidArguments) {
				t.Fatalf("expected ErrInvalidArguments, got %v", err)
			}
		})
	}
}

func TestModPowMatchesBig(t *testing.T) {
	// Moduli close to 2^62 force 128-bit intermediate products.
	mods := []int64{
		1074067721 * 1074164417,
		2146848763 * 2146848763,
		1<<62 + 1,
		(1 << 63) - 1,
	}
	bases := []int64{0, 1, 2, 255, 1 << 40, (1 << 62) - 57}
	exps := []int64{1, 2, 257, 1 << 20, (1 << 61) + 12345}

	for _, m := range mods {
		for _, b := range bases {
			for _, e := range exps {
				got, err := ModPow(b, e, m)
				if err != nil {
					t.Fatalf("ModPow: %v", err)
				}
				want := new(big.Int).Exp(big.NewInt(b), big.NewInt(e), big.NewInt(m)).Int64()
				if got != want {
					t.Fatalf("ModPow(%d, %d, %d) = %d, want %d", b, e, m, got, want)
				}
			}
		}
	}
}

func BenchmarkModPow(b *testing.B) {
	const n = int64(1074067721) * 1074164417
	for i := 0; i < b.N; i++ {
		_, _ = ModPow(int64(i&0xff), n-12345, n)
	}
}
