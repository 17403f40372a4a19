package engine

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/denkfabrik-neueMedien/sharp/internal/format"
)

// Interpretation is the color-space interpretation of a decoded image.
type Interpretation int

const (
	InterpretationMultiband Interpretation = iota
	InterpretationBW
	InterpretationGrey16
	InterpretationSRGB
	InterpretationRGB16
	InterpretationCMYK
)

// MinBands is the number of bands the interpretation needs before any alpha.
func (i Interpretation) MinBands() int {
	switch i {
	case InterpretationSRGB, InterpretationRGB16:
		return 3
	case InterpretationCMYK:
		return 4
	}
	return 1
}

// String returns the interpretation name.
func (i Interpretation) String() string {
	switch i {
	case InterpretationMultiband:
		return "multiband"
	case InterpretationBW:
		return "b-w"
	case InterpretationGrey16:
		return "grey16"
	case InterpretationSRGB:
		return "srgb"
	case InterpretationRGB16:
		return "rgb16"
	case InterpretationCMYK:
		return "cmyk"
	}
	return fmt.Sprintf("Interpretation(%d)", int(i))
}

// Image is engine-owned decoded image state.
//
// Image is not safe for concurrent mutation; callers serialize access to a
// single Image. Pixels may be called from several goroutines because the
// lazy decode runs at most once.
type Image struct {
	format   format.ImageFormat
	access   AccessMode
	width    int
	height   int
	interp   Interpretation
	bands    int
	bitDepth int
	blobs    map[string][]byte

	once   sync.Once
	decode func() (image.Image, error)
	pixels image.Image
	err    error
}

// NewImage wraps already-decoded pixels. The interpretation and band count
// are taken as given rather than derived from the pixel type.
func NewImage(pix image.Image, interp Interpretation, bands int) *Image {
	b := pix.Bounds()
	im := &Image{
		access:   AccessRandom,
		width:    b.Dx(),
		height:   b.Dy(),
		interp:   interp,
		bands:    bands,
		bitDepth: 8,
		blobs:    make(map[string][]byte),
		pixels:   pix,
	}
	if interp == InterpretationGrey16 || interp == InterpretationRGB16 {
		im.bitDepth = 16
	}
	im.once.Do(func() {})
	return im
}

// Format returns the format the image was opened as.
func (im *Image) Format() format.ImageFormat { return im.format }

// Access returns the access mode the image was opened with.
func (im *Image) Access() AccessMode { return im.access }

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.height }

// Interpretation returns the color-space interpretation.
func (im *Image) Interpretation() Interpretation { return im.interp }

// Bands returns the number of channels, alpha included.
func (im *Image) Bands() int { return im.bands }

// BitDepth returns the bits per sample.
func (im *Image) BitDepth() int { return im.bitDepth }

// Pixels returns the decoded pixels, decoding them on first use for images
// opened with sequential access.
func (im *Image) Pixels() (image.Image, error) {
	im.once.Do(func() {
		if im.decode == nil {
			im.err = errReleased
			return
		}
		im.pixels, im.err = im.decode()
		if im.err != nil {
			im.err = fmt.Errorf("failed to decode %v image: %w", im.format, im.err)
		}
		im.decode = nil
	})
	if im.pixels == nil && im.err == nil {
		return nil, errReleased
	}
	return im.pixels, im.err
}

// Blob returns the named metadata blob. The returned slice must not be
// modified; use SetBlob to replace it.
func (im *Image) Blob(name string) ([]byte, bool) {
	b, ok := im.blobs[name]
	return b, ok && len(b) > 0
}

// SetBlob replaces the named metadata blob with a copy of data.
func (im *Image) SetBlob(name string, data []byte) {
	if im.blobs == nil {
		im.blobs = make(map[string][]byte)
	}
	im.blobs[name] = append([]byte(nil), data...)
}

// RemoveBlob deletes the named metadata blob.
func (im *Image) RemoveBlob(name string) {
	delete(im.blobs, name)
}

// Release drops pixels, blobs, and any pending decode.
func (im *Image) Release() {
	im.once.Do(func() {})
	im.pixels = nil
	im.decode = nil
	im.blobs = nil
	if im.err == nil {
		im.err = errReleased
	}
}

// describeModel derives interpretation, band count, and bit depth from a
// Go color model when the container header did not say.
func describeModel(m color.Model) (Interpretation, int, int) {
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xFFFF {
				return InterpretationSRGB, 4, 8
			}
		}
		return InterpretationSRGB, 3, 8
	}
	switch m {
	case color.GrayModel:
		return InterpretationBW, 1, 8
	case color.Gray16Model:
		return InterpretationGrey16, 1, 16
	case color.YCbCrModel:
		return InterpretationSRGB, 3, 8
	case color.NYCbCrAModel, color.RGBAModel, color.NRGBAModel:
		return InterpretationSRGB, 4, 8
	case color.RGBA64Model, color.NRGBA64Model:
		return InterpretationRGB16, 4, 16
	case color.CMYKModel:
		return InterpretationCMYK, 4, 8
	}
	return InterpretationSRGB, 3, 8
}
