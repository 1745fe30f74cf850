package trsa

import (
	"github.com/TheusHen/trsa/trsa/cipher"
	"github.com/TheusHen/trsa/trsa/keys"
)

type (
	PublicKey  = keys.PublicKey
	PrivateKey = keys.PrivateKey
	Ciphertext = cipher.Ciphertext
)

// GenerateKeyPair returns a fresh key pair drawn from the bundled prime table.
func GenerateKeyPair() (PublicKey, PrivateKey) {
	return keys.GenerateKeyPair()
}

// Encrypt encrypts message byte by byte under pub.
func Encrypt(message []byte, pub PublicKey) (Ciphertext, error) {
	return cipher.Encrypt(message, pub)
}

// Decrypt reverses Encrypt with the matching private key.
func Decrypt(ciphertext Ciphertext, priv PrivateKey) ([]byte, error) {
	return cipher.Decrypt(ciphertext, priv)
}
