package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var (
	ErrCompressionFailed   = errors.New("wire: compression failed")
	ErrDecompressionFailed = errors.New("wire: decompression failed")
)

// CompressionLevel controls the speed/ratio tradeoff.
type CompressionLevel int

const (
	CompressionNone    CompressionLevel = iota - 1 // Stored uncompressed
	CompressionFast                                // Fastest, lower ratio
	CompressionDefault                             // Balanced
	CompressionBest                                // Best ratio, slower
)

// ParseCompressionLevel maps a config name (none, fast, default, best) to a level.
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "fast":
		return CompressionFast, nil
	case "", "default":
		return CompressionDefault, nil
	case "best":
		return CompressionBest, nil
	default:
		return 0, fmt.Errorf("wire: unknown compression level %q", s)
	}
}

var compressorPool = sync.Pool{
	New: func() interface{} {
		return lz4.NewWriter(nil)
	},
}

var decompressorPool = sync.Pool{
	New: func() interface{} {
		return lz4.NewReader(nil)
	},
}

// Compress compresses data into an LZ4 frame.
func Compress(data []byte, level CompressionLevel) ([]byte, error) {
	var buf bytes.Buffer
	w := compressorPool.Get().(*lz4.Writer)
	defer compressorPool.Put(w)

	w.Reset(&buf)

	switch level {
	case CompressionFast:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Fast))
	case CompressionBest:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Level9))
	default:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Level4))
	}

	if _, err := w.Write(data); err != nil {
		return nil, ErrCompressionFailed
	}
	if err := w.Close(); err != nil {
		return nil, ErrCompressionFailed
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame. Output is capped at MaxFramePayload.
func Decompress(data []byte) ([]byte, error) {
	r := decompressorPool.Get().(*lz4.Reader)
	defer decompressorPool.Put(r)

	r.Reset(bytes.NewReader(data))

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, MaxFramePayload+1))
	if err != nil {
		return nil, ErrDecompressionFailed
	}
	if n > MaxFramePayload {
		return nil, ErrFrameTooLarge
	}
	return buf.Bytes(), nil
}
