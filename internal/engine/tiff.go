package engine

import (
	"golang.org/x/image/tiff"

	"github.com/denkfabrik-neueMedien/sharp/internal/exif"
)

var tiffCodec = codec{
	decode:       tiff.Decode,
	decodeConfig: tiff.DecodeConfig,
	header:       tiffHeader,
}

// Whole-slide files are pyramidal TIFF variants; the first directory holds
// the full-resolution level.
var slideCodec = tiffCodec

// TIFF photometric interpretations.
const (
	photoWhiteIsZero = 0
	photoBlackIsZero = 1
	photoRGB         = 2
	photoPalette     = 3
	photoCMYK        = 5
	photoYCbCr       = 6
)

// tiffHeader reads IFD0 of the file itself. The file's Orientation tag is
// lifted into a minimal EXIF blob so orientation handling is the same for
// every container.
func tiffHeader(buf []byte) header {
	var hdr header
	blk, err := exif.View(buf)
	if err != nil {
		return hdr
	}

	samples := 1
	if v := blk.Uints(exif.TagSamplesPerPixel); len(v) > 0 && v[0] > 0 {
		samples = int(v[0])
	}
	hdr.bitDepth = 1
	if v := blk.Uints(exif.TagBitsPerSample); len(v) > 0 {
		hdr.bitDepth = int(v[0])
	}
	photometric := -1
	if v := blk.Uints(exif.TagPhotometricInterpretation); len(v) > 0 {
		photometric = int(v[0])
	}

	sixteen := hdr.bitDepth == 16
	hdr.bands = samples
	switch photometric {
	case photoWhiteIsZero, photoBlackIsZero:
		hdr.interp = InterpretationBW
		if sixteen {
			hdr.interp = InterpretationGrey16
		}
	case photoRGB, photoYCbCr:
		hdr.interp = InterpretationSRGB
		if sixteen {
			hdr.interp = InterpretationRGB16
		}
	case photoPalette:
		// The palette expands each index to RGB.
		hdr.interp = InterpretationSRGB
		hdr.bands = samples + 2
		hdr.bitDepth = 8
	case photoCMYK:
		hdr.interp = InterpretationCMYK
	default:
		hdr.interp = InterpretationMultiband
	}

	hdr.icc = blk.Bytes(exif.TagICCProfile)
	if v, ok := blk.Orientation(); ok {
		hdr.exif = exif.Minimal(v)
	}
	return hdr
}
