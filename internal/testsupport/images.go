// Package testsupport builds encoded image fixtures for tests.
package testsupport

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

// Tiny WebP files: a 1x1 lossy VP8 image and a 1x1 lossless VP8L image whose
// header sets the alpha_is_used bit.
var (
	WebPLossy    = mustBase64("UklGRiIAAABXRUJQVlA4IBYAAAAwAQCdASoBAAEADsD+JaQAA3AAAAAA")
	WebPLossless = mustBase64("UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA==")
)

func mustBase64(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Solid returns a w x h RGBA image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// Quadrants returns an image with red top-left, green top-right, blue
// bottom-left and white bottom-right quadrants.
func Quadrants(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var c color.Color
			switch {
			case x < w/2 && y < h/2:
				c = color.RGBA{255, 0, 0, 255}
			case x >= w/2 && y < h/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < w/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// PNG encodes img as PNG.
func PNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// JPEG encodes img as baseline JPEG.
func JPEG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// TIFF encodes img as uncompressed little-endian TIFF.
func TIFF(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode tiff: %v", err)
	}
	return buf.Bytes()
}

// WithPNGChunk inserts a chunk directly after IHDR.
func WithPNGChunk(t testing.TB, data []byte, typ string, payload []byte) []byte {
	t.Helper()
	const afterIHDR = 8 + 25
	if len(data) < afterIHDR || len(typ) != 4 {
		t.Fatalf("cannot insert %q chunk into %d-byte png", typ, len(data))
	}
	chunk := make([]byte, 8, 12+len(payload))
	binary.BigEndian.PutUint32(chunk, uint32(len(payload)))
	copy(chunk[4:], typ)
	chunk = append(chunk, payload...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := append([]byte(nil), data[:afterIHDR]...)
	out = append(out, chunk...)
	return append(out, data[afterIHDR:]...)
}

// ICCP builds an iCCP chunk payload holding profile.
func ICCP(t testing.TB, name string, profile []byte) []byte {
	t.Helper()
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	if _, err := zw.Write(profile); err != nil {
		t.Fatalf("failed to compress profile: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to compress profile: %v", err)
	}
	out := append([]byte(name), 0, 0)
	return append(out, z.Bytes()...)
}

// WithJPEGSegment inserts a marker segment directly after SOI.
func WithJPEGSegment(t testing.TB, data []byte, marker byte, payload []byte) []byte {
	t.Helper()
	if len(data) < 2 || len(payload) > 0xFFFF-2 {
		t.Fatalf("cannot insert segment 0x%02X", marker)
	}
	seg := []byte{0xFF, marker, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))
	seg = append(seg, payload...)

	out := append([]byte(nil), data[:2]...)
	out = append(out, seg...)
	return append(out, data[2:]...)
}

// Chunk is one RIFF chunk for WebPContainer.
type Chunk struct {
	FourCC string
	Data   []byte
}

// WebPContainer assembles a RIFF/WEBP file from chunks. The result is a
// well-formed container; whether it decodes depends on the chunks.
func WebPContainer(chunks ...Chunk) []byte {
	body := []byte("WEBP")
	for _, c := range chunks {
		body = append(body, c.FourCC...)
		body = binary.LittleEndian.AppendUint32(body, uint32(len(c.Data)))
		body = append(body, c.Data...)
		if len(c.Data)%2 == 1 {
			body = append(body, 0)
		}
	}
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

// WriteFile writes data to name inside a per-test temp directory.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
