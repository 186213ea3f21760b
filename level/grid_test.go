package level

import (
	"encoding/base64"
	"errors"
	"math"
	"strings"
	"testing"
)

func sampleGrid() Grid {
	g := NewGrid(3, 2)
	g[0][0], g[0][1], g[0][2] = 1, 0, 7
	g[1][0], g[1][1], g[1][2] = GID(FlippedHorizontallyFlag|2), 120, 0xFFFF
	return g
}

func gridsEqual(a, b Grid) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

func TestGridRoundTrip(t *testing.T) {
	for _, comp := range []Compression{CompressionNone, CompressionZlib, CompressionGzip, CompressionZstd} {
		t.Run(compressionName(comp), func(t *testing.T) {
			want := sampleGrid()
			text, err := EncodeGrid(want, comp)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeGrid(text, EncodingBase64, comp, want.Width(), want.Height())
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !gridsEqual(got, want) {
				t.Fatalf("round trip mismatch: got %v want %v", got, want)
			}
		})
	}
}

func TestDecodeGridIgnoresWhitespace(t *testing.T) {
	text, err := EncodeGrid(sampleGrid(), CompressionZlib)
	if err != nil {
		t.Fatal(err)
	}
	wrapped := "\n   " + text[:10] + "\n\t" + text[10:] + "\n  "
	if _, err := DecodeGrid(wrapped, EncodingBase64, CompressionZlib, 3, 2); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestDecodeGridCSV(t *testing.T) {
	got, err := DecodeGrid("1,0,7,\n2147483650,120,65535\n", EncodingCSV, CompressionNone, 3, 2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !gridsEqual(got, sampleGrid()) {
		t.Fatalf("unexpected grid %v", got)
	}
}

func TestDecodeGridFailures(t *testing.T) {
	zlibText, err := EncodeGrid(sampleGrid(), CompressionZlib)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := base64.StdEncoding.DecodeString(zlibText)
	truncated := base64.StdEncoding.EncodeToString(raw[:len(raw)/2])
	plain, err := EncodeGrid(sampleGrid(), CompressionNone)
	if err != nil {
		t.Fatal(err)
	}
	four, err := EncodeGrid(Grid{{1, 2, 3, 4}}, CompressionNone)
	if err != nil {
		t.Fatal(err)
	}
	// width*height*4 wraps around to 16 and width*height to 4
	huge := math.MaxInt/2 + 2

	cases := []struct {
		name          string
		data          string
		enc           Encoding
		comp          Compression
		width, height int
	}{
		{"bad_base64", "!!!not base64!!!", EncodingBase64, CompressionZlib, 3, 2},
		{"not_zlib", plain, EncodingBase64, CompressionZlib, 3, 2},
		{"truncated_stream", truncated, EncodingBase64, CompressionZlib, 3, 2},
		{"too_few_bytes", zlibText, EncodingBase64, CompressionZlib, 4, 2},
		{"too_many_bytes", zlibText, EncodingBase64, CompressionZlib, 2, 2},
		{"zero_width", zlibText, EncodingBase64, CompressionZlib, 0, 2},
		{"negative_height", zlibText, EncodingBase64, CompressionZlib, 3, -1},
		{"unknown_encoding", zlibText, Encoding("hex"), CompressionZlib, 3, 2},
		{"unknown_compression", zlibText, EncodingBase64, Compression("lz4"), 3, 2},
		{"csv_short", "1,2,3", EncodingCSV, CompressionNone, 3, 2},
		{"csv_garbage", "1,2,x,4,5,6", EncodingCSV, CompressionNone, 3, 2},
		{"overflowing_base64", four, EncodingBase64, CompressionNone, 4, huge},
		{"overflowing_csv", "1,2,3,4", EncodingCSV, CompressionNone, 4, huge},
		{"too_many_cells", "1", EncodingCSV, CompressionNone, MaxGridCells, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := DecodeGrid(c.data, c.enc, c.comp, c.width, c.height)
			if !errors.Is(err, ErrDecodeFailure) {
				t.Fatalf("expected ErrDecodeFailure, got %v", err)
			}
			if g != nil {
				t.Fatalf("expected no grid on failure")
			}
		})
	}
}

func TestParseCompression(t *testing.T) {
	cases := map[string]Compression{
		"":      CompressionNone,
		"none":  CompressionNone,
		"zlib":  CompressionZlib,
		"GZIP":  CompressionGzip,
		" zstd": CompressionZstd,
	}
	for in, want := range cases {
		got, err := ParseCompression(in)
		if err != nil || got != want {
			t.Errorf("ParseCompression(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseCompression("brotli"); !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("expected ErrDecodeFailure, got %v", err)
	}
}

func TestGIDFlags(t *testing.T) {
	g := GID(FlippedHorizontallyFlag | FlippedDiagonallyFlag | 42)
	if g.ID() != 42 {
		t.Fatalf("expected id 42, got %d", g.ID())
	}
	if !g.FlippedHorizontally() || g.FlippedVertically() || !g.FlippedDiagonally() {
		t.Fatalf("unexpected flags on %#x", uint32(g))
	}
	if !GID(FlippedVerticallyFlag).Empty() {
		t.Fatalf("a flagged zero id is still empty")
	}
}

func TestEncodeGridRejectsRaggedRows(t *testing.T) {
	g := Grid{{1, 2}, {3}}
	if _, err := EncodeGrid(g, CompressionNone); err == nil || !strings.Contains(err.Error(), "ragged") {
		t.Fatalf("expected ragged row error, got %v", err)
	}
}
