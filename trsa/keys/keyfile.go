package keys

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrInvalidKey = errors.New("keys: invalid key")

// Validate rejects keys that cannot be used with ModPow.
func (k PublicKey) Validate() error {
	if k.Modulus <= 0 || k.Exponent <= 0 {
		return fmt.Errorf("%w: modulus %d, exponent %d", ErrInvalidKey, k.Modulus, k.Exponent)
	}
	return nil
}

// Validate rejects keys that cannot be used with ModPow.
func (k PrivateKey) Validate() error {
	if k.Modulus <= 0 || k.Exponent < 0 {
		return fmt.Errorf("%w: modulus %d", ErrInvalidKey, k.Modulus)
	}
	return nil
}

// SavePublicKey writes the key as JSON with 0600 permissions.
func SavePublicKey(k PublicKey, path string) error {
	return writeJSON(k, path)
}

// SavePrivateKey writes the key as JSON with 0600 permissions.
func SavePrivateKey(k PrivateKey, path string) error {
	return writeJSON(k, path)
}

// LoadPublicKey reads and validates a public key file.
func LoadPublicKey(path string) (PublicKey, error) {
	var k PublicKey
	if err := readJSON(path, &k); err != nil {
		return PublicKey{}, err
	}
	if err := k.Validate(); err != nil {
		return PublicKey{}, err
	}
	return k, nil
}

// LoadPrivateKey reads and validates a private key file.
func LoadPrivateKey(path string) (PrivateKey, error) {
	var k PrivateKey
	if err := readJSON(path, &k); err != nil {
		return PrivateKey{}, err
	}
	if err := k.Validate(); err != nil {
		return PrivateKey{}, err
	}
	return k, nil
}

func writeJSON(v any, path string) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode key: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), append(b, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("unable to read key file: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to parse key file: %w", err)
	}
	return nil
}
