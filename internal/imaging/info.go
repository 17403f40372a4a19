package imaging

import (
	"github.com/denkfabrik-neueMedien/sharp/internal/engine"
	"github.com/denkfabrik-neueMedien/sharp/internal/format"
)

// ImageInfo summarizes a loaded image without exposing its pixels.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the classification the image was loaded as.
	Format format.ImageFormat `json:"format"`

	// Interpretation is the color-space interpretation, e.g. "srgb" or "b-w".
	Interpretation string `json:"interpretation"`

	// Bands is the channel count including any alpha.
	Bands int `json:"bands"`

	// BitDepth is the number of bits per sample.
	BitDepth int `json:"bit_depth"`

	// HasAlpha follows the band-count rule of Handle.HasAlpha.
	HasAlpha bool `json:"has_alpha"`

	// HasProfile reports an embedded ICC profile.
	HasProfile bool `json:"has_profile"`

	// Orientation is the EXIF orientation code, 0 when absent.
	Orientation Orientation `json:"orientation"`

	// ExifBytes is the size of the EXIF block, 0 when absent.
	ExifBytes int `json:"exif_bytes"`
}

// Describe collects the metadata of an open handle.
func Describe(h *Handle) *ImageInfo {
	exifBlob, _ := h.img.Blob(engine.BlobExif)
	return &ImageInfo{
		Width:          h.img.Width(),
		Height:         h.img.Height(),
		Format:         h.format,
		Interpretation: h.img.Interpretation().String(),
		Bands:          h.img.Bands(),
		BitDepth:       h.img.BitDepth(),
		HasAlpha:       h.HasAlpha(),
		HasProfile:     h.HasEmbeddedProfile(),
		Orientation:    h.Orientation(),
		ExifBytes:      len(exifBlob),
	}
}

// LoadImageInfo loads the image at path, describes it, and closes it.
func LoadImageInfo(loader *Loader, path string, access engine.AccessMode) (*ImageInfo, error) {
	h, err := loader.LoadFile(path, access)
	if err != nil {
		return nil, err
	}
	defer h.Close()
	return Describe(h), nil
}

// ExifBlock returns a copy of the handle's EXIF block, or nil when absent.
func (h *Handle) ExifBlock() []byte {
	b, ok := h.img.Blob(engine.BlobExif)
	if !ok {
		return nil
	}
	return append([]byte(nil), b...)
}
