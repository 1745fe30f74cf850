// Package primes holds the closed table of primes that trsa draws key material from.
//
// The bundled table (primes.txt) lists primes in [2^30, 2^31), so the product of any two fits
// comfortably in an int64. It is parsed once, on first use, and never mutated afterwards.
package primes
