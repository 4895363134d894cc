package features

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how the payload of a persisted matrix is stored.
type Compression uint8

const (
	// CompressionNone stores the payload as raw little-endian float64 values.
	CompressionNone Compression = 0
	// CompressionLZ4 stores the payload as a single LZ4 block (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD stores the payload as a ZSTD frame (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZSTD:
		return "ZSTD"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

const (
	// lz4MaxRatio bounds how far a single LZ4 block can expand.
	lz4MaxRatio = 255

	// Decoder window limits accepted by zstd.WithDecoderMaxWindow.
	zstdMinWindow = 1 << 10
	zstdMaxWindow = 1 << 29
)

var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(fmt.Errorf("features: zstd encoder: %w", err))
		}
		return enc
	},
}

// compressPayload compresses data with c. It returns the bytes to store and
// the compression actually applied: when compression does not shrink the
// payload, the raw bytes are stored with CompressionNone.
func compressPayload(data []byte, c Compression) ([]byte, Compression, error) {
	if len(data) == 0 {
		return data, CompressionNone, nil
	}

	var compressed []byte

	switch c {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, CompressionNone, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		enc := zstdEncoderPool.Get().(*zstd.Encoder)
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, CompressionNone, fmt.Errorf("features: unknown compression %v", c)
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		return data, CompressionNone, nil
	}

	return compressed, c, nil
}

// checkPayloadSize rejects headers whose stored and raw sizes cannot belong
// to the same payload, before anything is allocated for it.
func checkPayloadSize(c Compression, stored uint64, raw int) error {
	switch {
	case stored > uint64(raw):
		return fmt.Errorf("%w: payload %d larger than %d", ErrCorrupted, stored, raw)
	case c == CompressionNone && stored != uint64(raw):
		return fmt.Errorf("%w: raw payload %d, expected %d", ErrCorrupted, stored, raw)
	case c != CompressionNone && stored == 0 && raw > 0:
		return fmt.Errorf("%w: empty %v payload for %d bytes", ErrCorrupted, c, raw)
	case c == CompressionLZ4 && uint64(raw) > lz4MaxRatio*stored+16:
		return fmt.Errorf("%w: lz4 payload %d cannot expand to %d", ErrCorrupted, stored, raw)
	}
	return nil
}

// decompressPayload restores a payload of exactly size bytes.
func decompressPayload(data []byte, c Compression, size int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(data) != size {
			return nil, ErrCorrupted
		}
		return data, nil
	case CompressionLZ4:
		if err := checkPayloadSize(c, uint64(len(data)), size); err != nil {
			return nil, err
		}
		result := make([]byte, size)
		n, err := lz4.UncompressBlock(data, result)
		if err != nil {
			return nil, errors.Join(ErrCorrupted, err)
		}
		if n != size {
			return nil, ErrCorrupted
		}
		return result, nil
	case CompressionZSTD:
		return decompressZSTD(data, size)
	default:
		return nil, fmt.Errorf("features: unknown compression %v", c)
	}
}

// decompressZSTD decodes a single frame into at most size bytes. The decoder
// memory and window are bounded by size and the output buffer grows with the
// decoded data.
func decompressZSTD(data []byte, size int) ([]byte, error) {
	if size == 0 {
		if len(data) != 0 {
			return nil, ErrCorrupted
		}
		return data, nil
	}

	window := min(max(size, zstdMinWindow), zstdMaxWindow)
	dec, err := zstd.NewReader(bytes.NewReader(data),
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(max(size, zstdMinWindow))),
		zstd.WithDecoderMaxWindow(uint64(window)),
	)
	if err != nil {
		return nil, fmt.Errorf("features: zstd decoder: %w", err)
	}
	defer dec.Close()

	decoded, err := io.ReadAll(io.LimitReader(dec, int64(size)+1))
	if err != nil {
		return nil, errors.Join(ErrCorrupted, err)
	}
	if len(decoded) != size {
		return nil, fmt.Errorf("%w: zstd payload decoded to %d bytes, expected %d", ErrCorrupted, len(decoded), size)
	}
	return decoded, nil
}
