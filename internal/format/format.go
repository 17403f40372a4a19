package format

import "fmt"

// ImageFormat is the result of a classification attempt.
type ImageFormat int

const (
	// Unknown is the zero value. It is never a partial match.
	Unknown ImageFormat = iota
	JPEG
	PNG
	WebP
	TIFF
	// GenericRasterFallback marks files a general raster library has to read.
	GenericRasterFallback
	// WholeSlideFallback marks whole-slide microscopy and deep-zoom files.
	WholeSlideFallback
)

var formatNames = [...]string{
	Unknown:               "unknown",
	JPEG:                  "jpeg",
	PNG:                   "png",
	WebP:                  "webp",
	TIFF:                  "tiff",
	GenericRasterFallback: "magick",
	WholeSlideFallback:    "openslide",
}

// String returns the lower-case name of the format.
func (f ImageFormat) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("ImageFormat(%d)", int(f))
	}
	return formatNames[f]
}

// MarshalText encodes the format by name so it reads well in JSON output.
func (f ImageFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Known reports whether f is a real classification rather than Unknown.
func (f ImageFormat) Known() bool {
	return f > Unknown && int(f) < len(formatNames)
}

// UnmarshalText decodes a format name produced by MarshalText.
func (f *ImageFormat) UnmarshalText(text []byte) error {
	for i, name := range formatNames {
		if name == string(text) {
			*f = ImageFormat(i)
			return nil
		}
	}
	return fmt.Errorf("unknown image format %q", text)
}
