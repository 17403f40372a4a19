package engine

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"image/png"
	"io"
)

var pngCodec = codec{
	decode:       png.Decode,
	decodeConfig: png.DecodeConfig,
	header:       pngHeader,
}

// PNG color types from the IHDR chunk.
const (
	pngGray      = 0
	pngRGB       = 2
	pngPalette   = 3
	pngGrayAlpha = 4
	pngRGBA      = 6
)

// maxICCSize bounds the inflated size of an iCCP profile.
const maxICCSize = 16 << 20

// pngHeader walks the chunk list. Band count comes from the IHDR color type
// plus one when a tRNS chunk supplies transparency. The ICC profile is
// inflated from iCCP; eXIf is stored as found.
func pngHeader(buf []byte) header {
	var hdr header
	colorType := -1
	trns := false

	pos := 8
	for pos+12 <= len(buf) {
		length := int(binary.BigEndian.Uint32(buf[pos:]))
		typ := string(buf[pos+4 : pos+8])
		if length < 0 || pos+12+length > len(buf) {
			break
		}
		data := buf[pos+8 : pos+8+length]

		switch typ {
		case "IHDR":
			if len(data) >= 10 {
				hdr.bitDepth = int(data[8])
				colorType = int(data[9])
			}
		case "tRNS":
			trns = true
		case "iCCP":
			hdr.icc = inflateICC(data)
		case "eXIf":
			hdr.exif = append([]byte(nil), data...)
		}
		if typ == "IEND" {
			break
		}
		pos += 12 + length
	}

	sixteen := hdr.bitDepth == 16
	switch colorType {
	case pngGray, pngGrayAlpha:
		hdr.interp, hdr.bands = InterpretationBW, 1
		if sixteen {
			hdr.interp = InterpretationGrey16
		}
		if colorType == pngGrayAlpha || trns {
			hdr.bands++
		}
	case pngRGB, pngPalette, pngRGBA:
		hdr.interp, hdr.bands = InterpretationSRGB, 3
		if sixteen {
			hdr.interp = InterpretationRGB16
		}
		if colorType == pngRGBA || trns {
			hdr.bands++
		}
		if colorType == pngPalette {
			hdr.bitDepth = 8
		}
	}
	return hdr
}

// inflateICC decodes an iCCP payload: a Latin-1 name, a NUL, a compression
// method byte (0 = zlib), and the compressed profile.
func inflateICC(data []byte) []byte {
	nul := bytes.IndexByte(data, 0)
	if nul < 1 || nul+2 > len(data) || data[nul+1] != 0 {
		return nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(data[nul+2:]))
	if err != nil {
		return nil
	}
	defer zr.Close()
	profile, err := io.ReadAll(io.LimitReader(zr, maxICCSize))
	if err != nil {
		return nil
	}
	return profile
}
