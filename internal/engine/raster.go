package engine

import (
	"image"
	_ "image/gif" // Register GIF format decoder
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// rasterCodec is the generic path for formats without a dedicated codec.
// It relies on whatever decoders are registered with the image package.
var rasterCodec = codec{
	decode: func(r io.Reader) (image.Image, error) {
		return imaging.Decode(r)
	},
	decodeConfig: func(r io.Reader) (image.Config, error) {
		cfg, _, err := image.DecodeConfig(r)
		return cfg, err
	},
	header: func([]byte) header { return header{} },
}
