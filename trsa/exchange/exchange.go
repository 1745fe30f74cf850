package exchange

import (
	"errors"
	"fmt"

	"github.com/TheusHen/trsa/trsa/keys"
	"github.com/TheusHen/trsa/trsa/wire"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrUnexpectedFrame = errors.New("exchange: unexpected frame")
	ErrDigestMismatch  = errors.New("exchange: acknowledged digest does not match message")
	ErrUnexpectedKey   = errors.New("exchange: server key does not match expected key id")
)

// KeyPair is the key material a server publishes and decrypts with.
type KeyPair struct {
	Public  keys.PublicKey
	Private keys.PrivateKey
}

func digest(msg []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(msg)
}

func unexpected(got, want wire.MessageType) error {
	return fmt.Errorf("%w: got %s, want %s", ErrUnexpectedFrame, got, want)
}
