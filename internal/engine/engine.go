// Package engine is the decode backend behind the loader.
//
// It exposes one open-from-buffer and one open-from-file entry point, both
// keyed by the classified format and an access mode, and an Image type that
// carries decoded pixels together with the raw metadata blobs found in the
// container. The engine stores blobs but never interprets them: EXIF and ICC
// payloads are read and written through Blob and SetBlob by higher layers.
//
// Access modes mirror the usual random/sequential split. AccessRandom
// decodes all pixels while opening. AccessSequential only validates the
// header and reads container metadata up front, deferring the pixel decode
// to the first Pixels call.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/denkfabrik-neueMedien/sharp/internal/format"
)

// AccessMode describes how downstream consumers will traverse pixel data.
type AccessMode int

const (
	AccessRandom AccessMode = iota
	AccessSequential
)

// String returns the lower-case access mode name.
func (a AccessMode) String() string {
	switch a {
	case AccessRandom:
		return "random"
	case AccessSequential:
		return "sequential"
	}
	return fmt.Sprintf("AccessMode(%d)", int(a))
}

// ParseAccessMode maps "random" or "sequential" to an AccessMode. The empty
// string means random access.
func ParseAccessMode(s string) (AccessMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return AccessRandom, nil
	case "sequential":
		return AccessSequential, nil
	}
	return AccessRandom, fmt.Errorf("unknown access mode %q", s)
}

// Blob names understood by Image.Blob and Image.SetBlob.
const (
	BlobExif = "exif-data"
	BlobICC  = "icc-profile-data"
)

var (
	// ErrNoCodec is returned for formats the engine has no decoder for.
	ErrNoCodec = errors.New("engine: no codec for format")

	errReleased = errors.New("engine: image released")
)

// codec is the set of entry points for one container format.
type codec struct {
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
	// header reads container metadata. It never fails; a zero band count
	// means the container did not say and the color model decides.
	header func([]byte) header
}

// header is the metadata read from a container without decoding pixels.
type header struct {
	interp   Interpretation
	bands    int
	bitDepth int
	exif     []byte
	icc      []byte
}

// Engine dispatches decode requests to format-specific codecs.
type Engine struct {
	codecs map[format.ImageFormat]codec
}

// New returns an engine with every built-in codec registered.
func New() *Engine {
	return &Engine{
		codecs: map[format.ImageFormat]codec{
			format.JPEG:                  jpegCodec,
			format.PNG:                   pngCodec,
			format.WebP:                  webpCodec,
			format.TIFF:                  tiffCodec,
			format.GenericRasterFallback: rasterCodec,
			format.WholeSlideFallback:    slideCodec,
		},
	}
}

// Supports reports whether the engine can open f.
func (e *Engine) Supports(f format.ImageFormat) bool {
	_, ok := e.codecs[f]
	return ok
}

// OpenBuffer decodes buf as format f. The buffer must not be modified while
// the returned image may still decode lazily.
func (e *Engine) OpenBuffer(f format.ImageFormat, buf []byte, access AccessMode) (*Image, error) {
	c, ok := e.codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoCodec, f)
	}

	cfg, err := c.decodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to read %v header: %w", f, err)
	}

	hdr := c.header(buf)
	if hdr.bands == 0 {
		hdr.interp, hdr.bands, hdr.bitDepth = describeModel(cfg.ColorModel)
	}

	im := &Image{
		format:   f,
		access:   access,
		width:    cfg.Width,
		height:   cfg.Height,
		interp:   hdr.interp,
		bands:    hdr.bands,
		bitDepth: hdr.bitDepth,
		blobs:    make(map[string][]byte),
		decode: func() (image.Image, error) {
			return c.decode(bytes.NewReader(buf))
		},
	}
	if len(hdr.exif) > 0 {
		im.blobs[BlobExif] = hdr.exif
	}
	if len(hdr.icc) > 0 {
		im.blobs[BlobICC] = hdr.icc
	}

	if access == AccessRandom {
		if _, err := im.Pixels(); err != nil {
			return nil, err
		}
	}
	return im, nil
}

// OpenFile reads the file at path and decodes it as format f.
func (e *Engine) OpenFile(f format.ImageFormat, path string, access AccessMode) (*Image, error) {
	if !e.Supports(f) {
		return nil, fmt.Errorf("%w: %v", ErrNoCodec, f)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return e.OpenBuffer(f, buf, access)
}
