package keys

import (
	"encoding/binary"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// KeyID identifies a key pair. It is defined as BLAKE2b-256(modulus || exponent) over the
// public key, both as 8-byte big endian.
type KeyID [32]byte

func keyIDFor(modulus, exponent int64) KeyID {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(modulus))
	binary.BigEndian.PutUint64(buf[8:], uint64(exponent))
	return KeyID(blake2b.Sum256(buf[:]))
}

// ID returns the key pair identifier.
func (k PublicKey) ID() KeyID { return keyIDFor(k.Modulus, k.Exponent) }

// ID returns the identifier of the matching public key.
func (k PrivateKey) ID() KeyID { return keyIDFor(k.Modulus, PublicExponent) }

func ParseKeyID(s string) (KeyID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return KeyID{}, err
	}
	if len(b) != len(KeyID{}) {
		return KeyID{}, errors.New("keys: invalid KeyID length")
	}
	var id KeyID
	copy(id[:], b)
	return id, nil
}

func (id KeyID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first 8 hex characters, for display.
func (id KeyID) Short() string {
	return id.String()[:8]
}
