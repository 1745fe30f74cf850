// Package cipher encrypts and decrypts byte sequences with textbook RSA.
//
// Every plaintext byte becomes one ciphertext integer. There is no padding, no IV and no
// chaining, so equal bytes encrypt to equal integers under the same key.
package cipher

import (
	"fmt"

	"github.com/TheusHen/trsa/trsa/keys"
	"github.com/TheusHen/trsa/trsa/numtheory"
)

// Ciphertext holds one value in [0, modulus) per plaintext byte, in plaintext order.
type Ciphertext []int64

// Encrypt computes m^e mod n for every byte m of message.
func Encrypt(message []byte, key keys.PublicKey) (Ciphertext, error) {
	out := make(Ciphertext, len(message))
	for i, m := range message {
		c, err := numtheory.ModPow(int64(m), key.Exponent, key.Modulus)
		if err != nil {
			return nil, fmt.Errorf("cipher: encrypt byte %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// Decrypt computes c^d mod n for every value and truncates the result to a byte.
func Decrypt(ciphertext Ciphertext, key keys.PrivateKey) ([]byte, error) {
	out := make([]byte, len(ciphertext))
	for i, c := range ciphertext {
		m, err := numtheory.ModPow(c, key.Exponent, key.Modulus)
		if err != nil {
			return nil, fmt.Errorf("cipher: decrypt value %d: %w", i, err)
		}
		out[i] = byte(m)
	}
	return out, nil
}
