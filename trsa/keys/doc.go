// Package keys generates textbook RSA key pairs from the bundled prime table.
//
// A Generator draws two primes, rejects pairs that are equal or whose totient shares a
// factor with the public exponent 257, and derives the private exponent with the extended
// Euclidean algorithm. Keys are plain immutable values and can be stored as JSON.
package keys
