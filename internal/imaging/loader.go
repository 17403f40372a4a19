package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"

	"github.com/denkfabrik-neueMedien/sharp/internal/engine"
	"github.com/denkfabrik-neueMedien/sharp/internal/format"
)

var (
	// ErrUnsupportedFormat means classification found no usable format.
	ErrUnsupportedFormat = errors.New("imaging: unsupported format")

	// ErrDecode means the engine rejected bytes of a recognized format.
	ErrDecode = errors.New("imaging: decode failed")

	// ErrInvalidOrientation means an orientation write used a code outside 1..8.
	ErrInvalidOrientation = errors.New("imaging: invalid orientation")

	// ErrClosed means the handle was used after Close.
	ErrClosed = errors.New("imaging: handle closed")
)

// Loader classifies image input and opens it with the matching codec.
//
// A Loader holds no per-image state and is safe for concurrent use.
//
// # Example Usage
//
//	loader := imaging.NewLoader()
//	h, err := loader.LoadFile("/path/to/photo.jpg", engine.AccessSequential)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//	if h.Orientation() != imaging.OrientationAbsent {
//	    // ...
//	}
type Loader struct {
	engine *engine.Engine
}

// NewLoader creates a loader backed by the built-in decode engine.
func NewLoader() *Loader {
	return &Loader{engine: engine.New()}
}

// Load decodes an in-memory image.
//
// Parameters:
//   - buf: Encoded image bytes. The loader does not copy buf; it must stay
//     unchanged while the handle is open if access is sequential.
//   - access: Passed to the engine unchanged.
//
// # Errors
//
//   - ErrUnsupportedFormat if buf is empty or matches no signature
//   - ErrDecode, wrapping the engine error, if decoding fails
func (l *Loader) Load(buf []byte, access engine.AccessMode) (*Handle, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrUnsupportedFormat)
	}
	f := format.Classify(buf)
	if f == format.Unknown {
		return nil, fmt.Errorf("%w: no known signature in buffer", ErrUnsupportedFormat)
	}
	img, err := l.engine.OpenBuffer(f, buf, access)
	if err != nil {
		return nil, wrapOpenError(f, err)
	}
	return newHandle(img, f), nil
}

// LoadFile decodes the image stored at path.
//
// The format is sniffed from the file's first bytes, falling back to its
// extension when the bytes are not recognized.
//
// # Errors
//
//   - ErrDecode, also matching the fs error (fs.ErrNotExist etc.), if path is unreadable
//   - ErrUnsupportedFormat if neither bytes nor extension identify a format
//   - ErrDecode, wrapping the engine error, if decoding fails
func (l *Loader) LoadFile(path string, access engine.AccessMode) (*Handle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", ErrDecode, err)
	}
	f := format.ClassifyFile(path)
	if f == format.Unknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	img, err := l.engine.OpenFile(f, path, access)
	if err != nil {
		return nil, wrapOpenError(f, err)
	}
	return newHandle(img, f), nil
}

func wrapOpenError(f format.ImageFormat, err error) error {
	if errors.Is(err, engine.ErrNoCodec) {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	return fmt.Errorf("%w: %v: %w", ErrDecode, f, err)
}

// Handle is a decoded image owned by the caller.
//
// Handle exposes metadata queries and mutations plus read access to the
// pixels. It is not safe for concurrent use.
type Handle struct {
	img     *engine.Image
	format  format.ImageFormat
	release []func()
	closed  bool
}

func newHandle(img *engine.Image, f format.ImageFormat) *Handle {
	h := &Handle{img: img, format: f}
	runtime.SetFinalizer(h, (*Handle).finalize)
	return h
}

// Wrap returns a handle over an engine image built elsewhere, such as one
// created with engine.NewImage.
func Wrap(img *engine.Image) *Handle {
	return newHandle(img, img.Format())
}

// Format returns the classification the handle was opened with.
func (h *Handle) Format() format.ImageFormat { return h.format }

// Width returns the image width in pixels.
func (h *Handle) Width() int { return h.img.Width() }

// Height returns the image height in pixels.
func (h *Handle) Height() int { return h.img.Height() }

// Pixels returns the decoded pixels. For sequential access the first call
// performs the decode, and a corrupt stream is reported here wrapped in
// ErrDecode.
func (h *Handle) Pixels() (image.Image, error) {
	if h.closed {
		return nil, fmt.Errorf("%w: %w", ErrDecode, ErrClosed)
	}
	pix, err := h.img.Pixels()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return pix, nil
}

// OnRelease registers fn to run once when the handle is released, either by
// Close or, if Close is never called, when the garbage collector reclaims
// the handle. No assumption should be made about when the latter happens.
func (h *Handle) OnRelease(fn func()) {
	if fn == nil {
		return
	}
	if h.closed {
		fn()
		return
	}
	h.release = append(h.release, fn)
}

// Close releases the engine state and runs release callbacks. Calling Close
// more than once is harmless.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	runtime.SetFinalizer(h, nil)
	h.finalize()
	return nil
}

func (h *Handle) finalize() {
	h.closed = true
	h.img.Release()
	callbacks := h.release
	h.release = nil
	for _, fn := range callbacks {
		fn()
	}
}
