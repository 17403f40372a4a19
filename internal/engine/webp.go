package engine

import (
	"encoding/binary"

	"golang.org/x/image/webp"
)

var webpCodec = codec{
	decode:       webp.Decode,
	decodeConfig: webp.DecodeConfig,
	header:       webpHeader,
}

// VP8X feature flags.
const (
	vp8xAlpha = 0x10
)

// webpHeader walks the RIFF chunks after the 12-byte file header. Alpha is
// signalled by the VP8X flags, an ALPH chunk, or the VP8L alpha_is_used bit.
func webpHeader(buf []byte) header {
	hdr := header{interp: InterpretationSRGB, bands: 3, bitDepth: 8}
	alpha := false

	pos := 12
	for pos+8 <= len(buf) {
		fourcc := string(buf[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(buf[pos+4:]))
		if size < 0 || pos+8+size > len(buf) {
			break
		}
		data := buf[pos+8 : pos+8+size]

		switch fourcc {
		case "VP8X":
			if len(data) > 0 && data[0]&vp8xAlpha != 0 {
				alpha = true
			}
		case "ALPH":
			alpha = true
		case "VP8L":
			if len(data) >= 5 && data[0] == 0x2F {
				bits := binary.LittleEndian.Uint32(data[1:5])
				if (bits>>28)&1 == 1 {
					alpha = true
				}
			}
		case "ICCP":
			hdr.icc = append([]byte(nil), data...)
		case "EXIF":
			hdr.exif = append([]byte(nil), data...)
		}
		pos += 8 + size + size&1
	}

	if alpha {
		hdr.bands = 4
	}
	return hdr
}
