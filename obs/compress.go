// SPDX-License-Identifier: MIT

package obs

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a buffer is stored on the wire. Values are
// part of the wire format.
type Compression uint8

const (
	// CompressNone stores raw little-endian bytes.
	CompressNone Compression = 0
	// CompressLZ4 applies LZ4 block compression.
	CompressLZ4 Compression = 1
	// CompressZstd applies zstd at the default level.
	CompressZstd Compression = 2
	// CompressBG4LZ4 groups bytes by position within each 4-byte word,
	// then applies LZ4. Suited to float32 and int32 buffers.
	CompressBG4LZ4 Compression = 3
)

// String returns the name of c.
func (c Compression) String() string {
	switch c {
	case CompressNone:
		return "none"
	case CompressLZ4:
		return "lz4"
	case CompressZstd:
		return "zstd"
	case CompressBG4LZ4:
		return "bg4_lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses the String form of a Compression.
func ParseCompression(name string) (Compression, error) {
	for _, c := range []Compression{CompressNone, CompressLZ4, CompressZstd, CompressBG4LZ4} {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("obs: unknown compression %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compression) UnmarshalText(b []byte) error {
	v, err := ParseCompression(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Compression) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

var errIncompressible = errors.New("obs: data is incompressible")

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("obs: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("obs: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns data compressed with c, falling back to CompressNone when
// compression would not shrink it.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	var (
		out []byte
		err error
	)
	switch c {
	case CompressNone:
		return data, CompressNone, nil
	case CompressLZ4:
		out, err = compressLZ4(data)
	case CompressZstd:
		out = zstdEncoder.EncodeAll(data, nil)
		if len(out) >= len(data) {
			err = errIncompressible
		}
	case CompressBG4LZ4:
		out, err = compressLZ4(bg4Transpose(data))
	default:
		return nil, 0, fmt.Errorf("obs: unsupported compression %v", c)
	}
	if errors.Is(err, errIncompressible) {
		return data, CompressNone, nil
	}
	return out, c, err
}

func decompress(data []byte, c Compression, size int) ([]byte, error) {
	switch c {
	case CompressNone:
		if len(data) != size {
			return nil, fmt.Errorf("%w: raw buffer of %d bytes, want %d", ErrMalformed, len(data), size)
		}
		return data, nil
	case CompressLZ4:
		return decompressLZ4(data, size)
	case CompressZstd:
		out, err := zstdDecoder.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(out) != size {
			return nil, fmt.Errorf("%w: zstd gave %d bytes, want %d", ErrMalformed, len(out), size)
		}
		return out, nil
	case CompressBG4LZ4:
		out, err := decompressLZ4(data, size)
		if err != nil {
			return nil, err
		}
		return bg4Untranspose(out), nil
	default:
		return nil, fmt.Errorf("obs: unsupported compression %v", c)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 || n >= len(data) {
		return nil, errIncompressible
	}
	return dst[:n], nil
}

func decompressLZ4(data []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("%w: lz4 gave %d bytes, want %d", ErrMalformed, n, size)
	}
	return dst, nil
}

// bg4Transpose moves byte k of every 4-byte word into the k-th quarter of
// the output. Trailing bytes are copied unchanged.
func bg4Transpose(data []byte) []byte {
	groups := len(data) / 4
	out := make([]byte, len(data))
	for i := 0; i < groups; i++ {
		for b := 0; b < 4; b++ {
			out[b*groups+i] = data[i*4+b]
		}
	}
	copy(out[groups*4:], data[groups*4:])
	return out
}

func bg4Untranspose(data []byte) []byte {
	groups := len(data) / 4
	out := make([]byte, len(data))
	for i := 0; i < groups; i++ {
		for b := 0; b < 4; b++ {
			out[i*4+b] = data[b*groups+i]
		}
	}
	copy(out[groups*4:], data[groups*4:])
	return out
}
