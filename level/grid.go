package level

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Encoding is the text encoding of a tile layer's data element.
type Encoding string

const (
	EncodingBase64 Encoding = "base64"
	EncodingCSV    Encoding = "csv"
)

// Compression is the stream compression applied before base64 encoding.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionZlib Compression = "zlib"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// ParseCompression maps a compression name to a Compression. "none" and the
// empty string both mean uncompressed.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(name))); c {
	case CompressionNone, CompressionZlib, CompressionGzip, CompressionZstd:
		return c, nil
	case "none":
		return CompressionNone, nil
	default:
		return "", fmt.Errorf("%w: unknown compression %q", ErrDecodeFailure, name)
	}
}

// MaxGridCells bounds width*height so the decoded byte count fits in an int32.
const MaxGridCells = math.MaxInt32 / 4

// DecodeGrid turns a layer's data text into a height x width grid. Base64
// data must decompress to exactly width*height little-endian uint32 values;
// csv data must hold exactly width*height integers.
func DecodeGrid(data string, enc Encoding, comp Compression, width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid grid size %dx%d", ErrDecodeFailure, width, height)
	}
	if width > MaxGridCells/height {
		return nil, fmt.Errorf("%w: grid %dx%d exceeds %d cells", ErrDecodeFailure, width, height, MaxGridCells)
	}
	switch enc {
	case EncodingBase64:
		return decodeBase64(data, comp, width, height)
	case EncodingCSV:
		return decodeCSV(data, width, height)
	default:
		return nil, fmt.Errorf("%w: unknown encoding %q", ErrDecodeFailure, enc)
	}
}

func decodeBase64(data string, comp Compression, width, height int) (Grid, error) {
	raw, err := base64.StdEncoding.DecodeString(stripSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrDecodeFailure, err)
	}

	want := width * height * 4
	r, closeFn, err := decompressor(bytes.NewReader(raw), comp)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	// read one byte past the expected size so oversized streams are caught
	buf, err := io.ReadAll(io.LimitReader(r, int64(want)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, compressionName(comp), err)
	}
	if len(buf) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrDecodeFailure, len(buf), want, width, height)
	}

	g := NewGrid(width, height)
	for i := 0; i < width*height; i++ {
		g[i/width][i%width] = GID(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return g, nil
}

func decompressor(r io.Reader, comp Compression) (io.Reader, func(), error) {
	switch comp {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: zlib: %v", ErrDecodeFailure, err)
		}
		return zr, func() { zr.Close() }, nil
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: gzip: %v", ErrDecodeFailure, err)
		}
		return gr, func() { gr.Close() }, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: zstd: %v", ErrDecodeFailure, err)
		}
		return zr, zr.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown compression %q", ErrDecodeFailure, comp)
	}
}

func decodeCSV(data string, width, height int) (Grid, error) {
	fields := strings.FieldsFunc(data, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})
	if len(fields) != width*height {
		return nil, fmt.Errorf("%w: got %d csv values, want %d for %dx%d", ErrDecodeFailure, len(fields), width*height, width, height)
	}
	g := NewGrid(width, height)
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: csv value %d: %v", ErrDecodeFailure, i, err)
		}
		g[i/width][i%width] = GID(v)
	}
	return g, nil
}

// EncodeGrid writes g as base64 text using the given compression. It is the
// inverse of DecodeGrid with EncodingBase64.
func EncodeGrid(g Grid, comp Compression) (string, error) {
	raw := make([]byte, 0, g.Width()*g.Height()*4)
	for _, row := range g {
		if len(row) != g.Width() {
			return "", fmt.Errorf("level: ragged grid row of %d cells, want %d", len(row), g.Width())
		}
		for _, id := range row {
			raw = binary.LittleEndian.AppendUint32(raw, uint32(id))
		}
	}

	var buf bytes.Buffer
	var w io.WriteCloser
	switch comp {
	case CompressionNone:
		buf.Write(raw)
	case CompressionZlib:
		w = zlib.NewWriter(&buf)
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return "", fmt.Errorf("level: zstd writer: %w", err)
		}
		w = zw
	default:
		return "", fmt.Errorf("level: unknown compression %q", comp)
	}
	if w != nil {
		if _, err := w.Write(raw); err != nil {
			return "", fmt.Errorf("level: %s write: %w", comp, err)
		}
		if err := w.Close(); err != nil {
			return "", fmt.Errorf("level: %s close: %w", comp, err)
		}
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func compressionName(c Compression) string {
	if c == CompressionNone {
		return "none"
	}
	return string(c)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
