package imaging

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"

	"github.com/denkfabrik-neueMedien/sharp/internal/engine"
	"github.com/denkfabrik-neueMedien/sharp/internal/testsupport"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func TestAutoOrient(t *testing.T) {
	// The source is 4x2: red and green on top, blue and white below.
	data := testsupport.PNG(t, testsupport.Quadrants(4, 2))

	tests := []struct {
		orientation   Orientation
		width, height int
		topLeft       color.Color
		bottomRight   color.Color
	}{
		{OrientationAbsent, 4, 2, red, white},
		{OrientationNormal, 4, 2, red, white},
		{OrientationFlipH, 4, 2, green, blue},
		{OrientationRotate180, 4, 2, white, red},
		{OrientationFlipV, 4, 2, blue, green},
		{OrientationTranspose, 2, 4, red, white},
		{OrientationRotate90, 2, 4, blue, green},
		{OrientationTransverse, 2, 4, white, red},
		{OrientationRotate270, 2, 4, green, blue},
	}

	for _, tt := range tests {
		t.Run(tt.orientation.String(), func(t *testing.T) {
			h, err := NewLoader().Load(data, engine.AccessSequential)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer h.Close()

			if tt.orientation != OrientationAbsent {
				if err := h.SetOrientation(tt.orientation); err != nil {
					t.Fatalf("SetOrientation failed: %v", err)
				}
			}

			out, err := AutoOrient(h)
			if err != nil {
				t.Fatalf("AutoOrient failed: %v", err)
			}

			b := out.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Fatalf("dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
			if got := out.At(b.Min.X, b.Min.Y); !sameColor(got, tt.topLeft) {
				t.Errorf("top-left: got %v, want %v", got, tt.topLeft)
			}
			if got := out.At(b.Max.X-1, b.Max.Y-1); !sameColor(got, tt.bottomRight) {
				t.Errorf("bottom-right: got %v, want %v", got, tt.bottomRight)
			}
			if got := h.Orientation(); got != OrientationAbsent {
				t.Errorf("orientation after AutoOrient: got %v, want absent", got)
			}
		})
	}
}

func TestAutoOrient_ClosedHandle(t *testing.T) {
	h := loadPNG(t)
	h.Close()
	if _, err := AutoOrient(h); err == nil {
		t.Error("AutoOrient should fail on a closed handle")
	}
}

func TestAutoOrientPNG(t *testing.T) {
	data := testsupport.PNG(t, testsupport.Quadrants(6, 2))
	h, err := NewLoader().Load(data, engine.AccessRandom)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer h.Close()
	if err := h.SetOrientation(OrientationRotate270); err != nil {
		t.Fatalf("SetOrientation failed: %v", err)
	}

	result, err := AutoOrientPNG(h)
	if err != nil {
		t.Fatalf("AutoOrientPNG failed: %v", err)
	}
	if result.Width != 2 || result.Height != 6 {
		t.Errorf("dimensions: got %dx%d, want 2x6", result.Width, result.Height)
	}
	if result.Applied != OrientationRotate270 {
		t.Errorf("Applied: got %v, want rotate-270", result.Applied)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %q", result.MimeType)
	}

	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("result is not a PNG: %v", err)
	}
	if got := img.At(0, 0); !sameColor(got, green) {
		t.Errorf("top-left: got %v, want green", got)
	}
}
