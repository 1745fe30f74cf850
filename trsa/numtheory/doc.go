// Package numtheory implements the integer arithmetic behind trsa.
//
// All functions are pure and operate on int64:
//   - GCD: Euclid's algorithm by repeated remainder
//   - ExtendedEuclid: Bézout coefficient, used for modular inverses
//   - ModPow: square-and-multiply modular exponentiation with 128-bit intermediate products
package numtheory
