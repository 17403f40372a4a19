package imaging

import (
	"fmt"

	"github.com/denkfabrik-neueMedien/sharp/internal/engine"
	"github.com/denkfabrik-neueMedien/sharp/internal/exif"
)

// Orientation is an EXIF orientation code.
//
// Codes 1 through 8 describe the rotation and mirroring needed to display
// the stored pixels upright. OrientationAbsent means the image declares none.
type Orientation int

const (
	OrientationAbsent     Orientation = 0
	OrientationNormal     Orientation = 1
	OrientationFlipH      Orientation = 2
	OrientationRotate180  Orientation = 3
	OrientationFlipV      Orientation = 4
	OrientationTranspose  Orientation = 5
	OrientationRotate90   Orientation = 6 // rotate 90° clockwise to display
	OrientationTransverse Orientation = 7
	OrientationRotate270  Orientation = 8
)

// Valid reports whether o is one of the eight EXIF codes.
func (o Orientation) Valid() bool {
	return o >= OrientationNormal && o <= OrientationRotate270
}

var orientationNames = [...]string{
	"absent", "normal", "flip-horizontal", "rotate-180", "flip-vertical",
	"transpose", "rotate-90", "transverse", "rotate-270",
}

// String returns a short name for the code.
func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// HasEmbeddedProfile reports whether the image carries an ICC profile.
func (h *Handle) HasEmbeddedProfile() bool {
	_, ok := h.img.Blob(engine.BlobICC)
	return ok
}

// HasAlpha reports whether the image has more bands than its color-space
// interpretation requires. The extra band is taken to be alpha.
//
// Examples:
//   - sRGB with 4 bands: true; with 3 bands: false
//   - B-W with 2 bands: true; with 1 band: false
//   - CMYK with 5 bands: true; with 4 bands: false
func (h *Handle) HasAlpha() bool {
	return h.img.Bands() > h.img.Interpretation().MinBands()
}

// Orientation returns the EXIF orientation, or OrientationAbsent when the
// image has no EXIF block, no orientation tag, or a value outside 1..8.
func (h *Handle) Orientation() Orientation {
	blk := h.exifBlock()
	if blk == nil {
		return OrientationAbsent
	}
	v, ok := blk.Orientation()
	if !ok || !Orientation(v).Valid() {
		return OrientationAbsent
	}
	return Orientation(v)
}

// SetOrientation writes the EXIF orientation tag.
//
// An existing EXIF block keeps all its other fields. When the image has no
// block, or the block cannot be parsed, a minimal block holding just the
// orientation replaces it.
//
// # Errors
//
//   - ErrInvalidOrientation if o is not in 1..8; the handle is unchanged
//   - ErrClosed if the handle has been closed
func (h *Handle) SetOrientation(o Orientation) error {
	if !o.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}
	if h.closed {
		return ErrClosed
	}
	blk := h.exifBlock()
	if blk == nil {
		h.img.SetBlob(engine.BlobExif, exif.Minimal(uint16(o)))
		return nil
	}
	blk.SetOrientation(uint16(o))
	h.img.SetBlob(engine.BlobExif, blk.Encode())
	return nil
}

// RemoveOrientation deletes the EXIF orientation tag, leaving the rest of
// the block alone. It does nothing when there is no block or no tag, or
// when the handle is closed.
func (h *Handle) RemoveOrientation() {
	if h.closed {
		return
	}
	blk := h.exifBlock()
	if blk == nil || !blk.RemoveOrientation() {
		return
	}
	h.img.SetBlob(engine.BlobExif, blk.Encode())
}

// exifBlock parses the stored EXIF blob; nil means absent or unparseable.
func (h *Handle) exifBlock() *exif.Block {
	raw, ok := h.img.Blob(engine.BlobExif)
	if !ok {
		return nil
	}
	blk, err := exif.Parse(raw)
	if err != nil {
		return nil
	}
	return blk
}
