// Package trsa provides a small textbook RSA implementation.
//
// Key pairs are built from two primes drawn out of a fixed, bundled prime table and the fixed
// public exponent 257. Messages are encrypted one byte at a time with modular exponentiation;
// there is no padding and no block chaining. The numeric domain is int64 throughout.
//
// trsa is an educational/reference implementation. It is not suitable for protecting real data.
package trsa
