package format

import (
	"bytes"
	"io"
	"os"
)

// HeaderSize is the number of leading bytes classification ever looks at.
const HeaderSize = 12

// signature is one row of the classification table. Each prefix is compared
// at its offset; minLen guards against reading past a short buffer.
type signature struct {
	format ImageFormat
	minLen int
	parts  []part
}

type part struct {
	offset int
	bytes  []byte
}

// signatures is evaluated top to bottom and the first match wins.
var signatures = []signature{
	{JPEG, 2, []part{{0, []byte{0xFF, 0xD8}}}},
	{PNG, 8, []part{{0, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}}}},
	{WebP, 12, []part{{0, []byte("RIFF")}, {8, []byte("WEBP")}}},
	{TIFF, 4, []part{{0, []byte{'I', 'I', 0x2A, 0x00}}}},
	{TIFF, 4, []part{{0, []byte{'M', 'M', 0x00, 0x2A}}}},
}

func (s signature) match(buf []byte) bool {
	if len(buf) < s.minLen {
		return false
	}
	for _, p := range s.parts {
		end := p.offset + len(p.bytes)
		if end > len(buf) || !bytes.Equal(buf[p.offset:end], p.bytes) {
			return false
		}
	}
	return true
}

// Classify returns the format whose signature matches the start of buf.
// Short or unrecognized buffers yield Unknown.
func Classify(buf []byte) ImageFormat {
	for _, s := range signatures {
		if s.match(buf) {
			return s.format
		}
	}
	return Unknown
}

// ClassifyFile sniffs the first bytes of the file at path and falls back to
// the filename extension when the bytes are inconclusive. A file that cannot
// be opened is classified by extension alone.
func ClassifyFile(path string) ImageFormat {
	if f := Classify(readHeader(path)); f != Unknown {
		return f
	}
	return ClassifyExtension(path)
}

func readHeader(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil
	}
	return buf[:n]
}
