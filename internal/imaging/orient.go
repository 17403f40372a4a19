package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// OrientResult contains an upright rendering of an image.
type OrientResult struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Applied     Orientation `json:"applied_orientation"`
	ImageBase64 string      `json:"image_base64"`
	MimeType    string      `json:"mime_type"`
}

// AutoOrient returns the pixels transformed so the image displays upright
// and removes the orientation tag from the handle, keeping metadata and
// pixels consistent. Images without an orientation, or already upright, are
// returned unchanged.
//
// The transform for each code:
//
//	2: flip horizontal    3: rotate 180    4: flip vertical
//	5: transpose          6: rotate 90 cw  7: transverse
//	8: rotate 270 cw
func AutoOrient(h *Handle) (image.Image, error) {
	pix, err := h.Pixels()
	if err != nil {
		return nil, err
	}

	var out image.Image
	switch h.Orientation() {
	case OrientationFlipH:
		out = imaging.FlipH(pix)
	case OrientationRotate180:
		out = imaging.Rotate180(pix)
	case OrientationFlipV:
		out = imaging.FlipV(pix)
	case OrientationTranspose:
		out = imaging.Transpose(pix)
	case OrientationRotate90:
		// imaging rotates counter-clockwise.
		out = imaging.Rotate270(pix)
	case OrientationTransverse:
		out = imaging.Transverse(pix)
	case OrientationRotate270:
		out = imaging.Rotate90(pix)
	default:
		out = pix
	}

	h.RemoveOrientation()
	return out, nil
}

// AutoOrientPNG applies AutoOrient and encodes the result as base64 PNG.
func AutoOrientPNG(h *Handle) (*OrientResult, error) {
	applied := h.Orientation()
	out, err := AutoOrient(h)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode oriented image: %w", err)
	}

	return &OrientResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Applied:     applied,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
