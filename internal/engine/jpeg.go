package engine

import (
	"bytes"
	"encoding/binary"
	"image/jpeg"
	"sort"

	"github.com/denkfabrik-neueMedien/sharp/internal/exif"
)

var jpegCodec = codec{
	decode:       jpeg.Decode,
	decodeConfig: jpeg.DecodeConfig,
	header:       jpegHeader,
}

var iccIdentifier = []byte("ICC_PROFILE\x00")

// jpegHeader walks the marker segments up to the first scan. It collects the
// first EXIF APP1 segment, reassembles ICC APP2 chunks by sequence number,
// and takes the component count from the frame header.
func jpegHeader(buf []byte) header {
	var hdr header
	type iccChunk struct {
		seq  byte
		data []byte
	}
	var chunks []iccChunk

	pos := 2
	for pos+4 <= len(buf) {
		if buf[pos] != 0xFF {
			break
		}
		marker := buf[pos+1]
		if marker == 0xFF {
			pos++
			continue
		}
		if marker == 0xD8 || (marker >= 0xD0 && marker <= 0xD7) || marker == 0x01 {
			pos += 2
			continue
		}
		if marker == 0xD9 || marker == 0xDA {
			break
		}

		length := int(binary.BigEndian.Uint16(buf[pos+2:]))
		if length < 2 || pos+2+length > len(buf) {
			break
		}
		seg := buf[pos+4 : pos+2+length]

		switch {
		case marker == 0xE1 && hdr.exif == nil && bytes.HasPrefix(seg, exif.Identifier):
			hdr.exif = append([]byte(nil), seg...)
		case marker == 0xE2 && bytes.HasPrefix(seg, iccIdentifier) && len(seg) > len(iccIdentifier)+2:
			chunks = append(chunks, iccChunk{
				seq:  seg[len(iccIdentifier)],
				data: seg[len(iccIdentifier)+2:],
			})
		case isSOF(marker) && len(seg) >= 6:
			hdr.bitDepth = int(seg[0])
			switch seg[5] {
			case 1:
				hdr.interp, hdr.bands = InterpretationBW, 1
			case 3:
				hdr.interp, hdr.bands = InterpretationSRGB, 3
			case 4:
				hdr.interp, hdr.bands = InterpretationCMYK, 4
			}
		}
		pos += 2 + length
	}

	if len(chunks) > 0 {
		sort.SliceStable(chunks, func(i, j int) bool { return chunks[i].seq < chunks[j].seq })
		for _, c := range chunks {
			hdr.icc = append(hdr.icc, c.data...)
		}
	}
	return hdr
}

// isSOF reports whether marker starts a frame. C4 (DHT), C8 (JPG) and CC
// (DAC) share the range but are not frame headers.
func isSOF(marker byte) bool {
	return marker >= 0xC0 && marker <= 0xCF && marker != 0xC4 && marker != 0xC8 && marker != 0xCC
}
