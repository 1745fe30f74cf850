package wire

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TheusHen/trsa/trsa/cipher"
	"github.com/TheusHen/trsa/trsa/keys"
)

var ErrMalformedCiphertext = errors.New("wire: malformed ciphertext")

// MaxCiphertextLen is the largest ciphertext that fits in one frame.
const MaxCiphertextLen = (MaxFramePayload - 4) / 8

func EncodePublicKey(k keys.PublicKey) ([]byte, error) {
	return json.Marshal(k)
}

func DecodePublicKey(b []byte) (keys.PublicKey, error) {
	var k keys.PublicKey
	if err := json.Unmarshal(b, &k); err != nil {
		return keys.PublicKey{}, err
	}
	if err := k.Validate(); err != nil {
		return keys.PublicKey{}, err
	}
	return k, nil
}

// MarshalCiphertext encodes ct as a 4-byte count followed by 8-byte big-endian values.
func MarshalCiphertext(ct cipher.Ciphertext) []byte {
	out := make([]byte, 4+8*len(ct))
	binary.BigEndian.PutUint32(out[:4], uint32(len(ct)))
	for i, c := range ct {
		binary.BigEndian.PutUint64(out[4+8*i:], uint64(c))
	}
	return out
}

// UnmarshalCiphertext reverses MarshalCiphertext. The count must match the payload length
// exactly and no value may be negative.
func UnmarshalCiphertext(b []byte) (cipher.Ciphertext, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: short header", ErrMalformedCiphertext)
	}
	n := binary.BigEndian.Uint32(b[:4])
	if uint64(len(b)-4) != 8*uint64(n) {
		return nil, fmt.Errorf("%w: count %d does not match %d payload bytes", ErrMalformedCiphertext, n, len(b)-4)
	}
	ct := make(cipher.Ciphertext, n)
	for i := range ct {
		v := int64(binary.BigEndian.Uint64(b[4+8*i:]))
		if v < 0 {
			return nil, fmt.Errorf("%w: negative value at %d", ErrMalformedCiphertext, i)
		}
		ct[i] = v
	}
	return ct, nil
}

// CiphertextFrame frames ct, compressing the payload when that makes it smaller.
// CompressionNone always produces a plain CIPHERTEXT frame.
func CiphertextFrame(ct cipher.Ciphertext, level CompressionLevel) (Frame, error) {
	if len(ct) > MaxCiphertextLen {
		return Frame{}, ErrFrameTooLarge
	}
	raw := MarshalCiphertext(ct)
	if level == CompressionNone {
		return Frame{Type: MessageTypeCiphertext, Payload: raw}, nil
	}
	compressed, err := Compress(raw, level)
	if err != nil || len(compressed) >= len(raw) {
		return Frame{Type: MessageTypeCiphertext, Payload: raw}, nil
	}
	return Frame{Type: MessageTypeCiphertextLZ4, Payload: compressed}, nil
}

// ParseCiphertextFrame decodes either ciphertext frame type.
func ParseCiphertextFrame(f Frame) (cipher.Ciphertext, error) {
	switch f.Type {
	case MessageTypeCiphertext:
		return UnmarshalCiphertext(f.Payload)
	case MessageTypeCiphertextLZ4:
		raw, err := Decompress(f.Payload)
		if err != nil {
			return nil, err
		}
		return UnmarshalCiphertext(raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, f.Type)
	}
}
