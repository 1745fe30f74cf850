// Package archive stores ciphertexts in a self-repairing file format.
//
// Layout (all integers big endian):
//
//	4 bytes: magic "TRSA"
//	1 byte: version
//	1 byte: data shards (k)
//	1 byte: parity shards (m)
//	1 byte: reserved, zero
//	4 bytes: payload size
//	4 bytes: shard size
//	32 bytes: key id of the public key the ciphertext was made with
//	(k+m) * 32 bytes: BLAKE2b-256 of every shard
//	(k+m) * shard size bytes: shards
//
// The payload is the wire encoding of the ciphertext. Shards whose checksum does not match
// are treated as lost and rebuilt from parity; up to m damaged shards are tolerated.
package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/TheusHen/trsa/trsa/archive/erasure"
	"github.com/TheusHen/trsa/trsa/cipher"
	"github.com/TheusHen/trsa/trsa/keys"
	"github.com/TheusHen/trsa/trsa/wire"
	"golang.org/x/crypto/blake2b"
)

const (
	Version = 1

	headerSize   = 4 + 4 + 4 + 4 + 32
	checksumSize = blake2b.Size256
)

var magic = [4]byte{'T', 'R', 'S', 'A'}

var ErrBadArchive = errors.New("archive: malformed archive")

// Archive is the decoded content of a sealed file.
type Archive struct {
	KeyID      keys.KeyID
	Ciphertext cipher.Ciphertext
	Repaired   int // shards that failed their checksum and were rebuilt
}

// Seal encodes ct with the given Reed-Solomon layout.
func Seal(ct cipher.Ciphertext, id keys.KeyID, dataShards, parityShards int) ([]byte, error) {
	if dataShards > 255 || parityShards > 255 {
		return nil, erasure.ErrInvalidConfig
	}
	codec, err := erasure.NewCodec(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	payload := wire.MarshalCiphertext(ct)
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("archive: ciphertext of %d values is too large", len(ct))
	}
	shards, err := codec.EncodeData(payload)
	if err != nil {
		return nil, fmt.Errorf("archive: encode shards: %w", err)
	}
	shardSize := len(shards[0])

	var buf bytes.Buffer
	buf.Grow(headerSize + len(shards)*(checksumSize+shardSize))
	buf.Write(magic[:])
	buf.Write([]byte{Version, byte(dataShards), byte(parityShards), 0})
	var sizes [8]byte
	binary.BigEndian.PutUint32(sizes[:4], uint32(len(payload)))
	binary.BigEndian.PutUint32(sizes[4:], uint32(shardSize))
	buf.Write(sizes[:])
	buf.Write(id[:])
	for _, s := range shards {
		sum := blake2b.Sum256(s)
		buf.Write(sum[:])
	}
	for _, s := range shards {
		buf.Write(s)
	}
	return buf.Bytes(), nil
}

// Open decodes an archive, repairing damaged shards where possible.
// It returns erasure.ErrTooManyLost when more than the parity count of shards is damaged.
func Open(b []byte) (Archive, error) {
	if len(b) < headerSize {
		return Archive{}, fmt.Errorf("%w: short header", ErrBadArchive)
	}
	if !bytes.Equal(b[:4], magic[:]) {
		return Archive{}, fmt.Errorf("%w: bad magic", ErrBadArchive)
	}
	if b[4] != Version {
		return Archive{}, fmt.Errorf("%w: unsupported version %d", ErrBadArchive, b[4])
	}
	dataShards, parityShards := int(b[5]), int(b[6])
	payloadSize := int(binary.BigEndian.Uint32(b[8:12]))
	shardSize := int(binary.BigEndian.Uint32(b[12:16]))
	var id keys.KeyID
	copy(id[:], b[16:headerSize])

	codec, err := erasure.NewCodec(dataShards, parityShards)
	if err != nil {
		return Archive{}, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	total := codec.TotalShards()
	if shardSize <= 0 || payloadSize > dataShards*shardSize {
		return Archive{}, fmt.Errorf("%w: inconsistent sizes", ErrBadArchive)
	}
	if len(b) != headerSize+total*(checksumSize+shardSize) {
		return Archive{}, fmt.Errorf("%w: length %d does not match layout", ErrBadArchive, len(b))
	}

	sums := b[headerSize : headerSize+total*checksumSize]
	body := b[headerSize+total*checksumSize:]
	shards := make([][]byte, total)
	repaired := 0
	for i := range shards {
		s := body[i*shardSize : (i+1)*shardSize]
		sum := blake2b.Sum256(s)
		if !bytes.Equal(sum[:], sums[i*checksumSize:(i+1)*checksumSize]) {
			repaired++
			continue
		}
		shards[i] = append([]byte(nil), s...)
	}
	if repaired > 0 {
		if err := codec.ReconstructData(shards); err != nil {
			return Archive{}, err
		}
	}

	payload, err := codec.Join(shards, payloadSize)
	if err != nil {
		return Archive{}, err
	}
	ct, err := wire.UnmarshalCiphertext(payload)
	if err != nil {
		return Archive{}, err
	}
	return Archive{KeyID: id, Ciphertext: ct, Repaired: repaired}, nil
}
