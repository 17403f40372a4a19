package format

import (
	"path/filepath"
	"strings"
)

var (
	jpegExts  = []string{".jpg", ".jpeg", ".jpe", ".jfif"}
	pngExts   = []string{".png"}
	webpExts  = []string{".webp"}
	tiffExts  = []string{".tif", ".tiff"}
	dzExts    = []string{".dzi", ".dz"}
	slideExts = []string{".svs", ".ndpi", ".scn", ".mrxs", ".vms", ".vmu", ".bif", ".svslide"}
	// Formats only a general-purpose raster library can read.
	magickExts = []string{
		".gif", ".bmp", ".dib", ".ico", ".psd", ".tga",
		".pbm", ".pgm", ".ppm", ".pnm", ".pam", ".xpm", ".pcx",
	}
)

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// IsJpeg reports whether path has a JPEG filename extension.
func IsJpeg(path string) bool { return hasExt(path, jpegExts) }

// IsPng reports whether path has a PNG filename extension.
func IsPng(path string) bool { return hasExt(path, pngExts) }

// IsWebp reports whether path has a WebP filename extension.
func IsWebp(path string) bool { return hasExt(path, webpExts) }

// IsTiff reports whether path has a TIFF filename extension.
func IsTiff(path string) bool { return hasExt(path, tiffExts) }

// IsDz reports whether path names a deep-zoom image.
func IsDz(path string) bool { return hasExt(path, dzExts) }

// IsMagick reports whether path names a format for the generic raster path.
func IsMagick(path string) bool { return hasExt(path, magickExts) }

// IsSlide reports whether path names a whole-slide or deep-zoom image.
func IsSlide(path string) bool { return hasExt(path, slideExts) || IsDz(path) }

// fallbacks is consulted in order when byte sniffing is inconclusive.
var fallbacks = []struct {
	check  func(string) bool
	format ImageFormat
}{
	{IsJpeg, JPEG},
	{IsPng, PNG},
	{IsWebp, WebP},
	{IsTiff, TIFF},
	{IsMagick, GenericRasterFallback},
	{IsSlide, WholeSlideFallback},
}

// ClassifyExtension maps a filename extension to a format without reading
// the file.
func ClassifyExtension(path string) ImageFormat {
	for _, fb := range fallbacks {
		if fb.check(path) {
			return fb.format
		}
	}
	return Unknown
}
