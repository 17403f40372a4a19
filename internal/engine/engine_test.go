package engine

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/denkfabrik-neueMedien/sharp/internal/exif"
	"github.com/denkfabrik-neueMedien/sharp/internal/format"
	"github.com/denkfabrik-neueMedien/sharp/internal/testsupport"
)

func TestParseAccessMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AccessMode
		wantErr bool
	}{
		{"", AccessRandom, false},
		{"random", AccessRandom, false},
		{" Sequential ", AccessSequential, false},
		{"streaming", AccessRandom, true},
	}
	for _, tt := range tests {
		got, err := ParseAccessMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAccessMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseAccessMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInterpretation_MinBands(t *testing.T) {
	tests := []struct {
		interp Interpretation
		want   int
	}{
		{InterpretationMultiband, 1},
		{InterpretationBW, 1},
		{InterpretationGrey16, 1},
		{InterpretationSRGB, 3},
		{InterpretationRGB16, 3},
		{InterpretationCMYK, 4},
	}
	for _, tt := range tests {
		if got := tt.interp.MinBands(); got != tt.want {
			t.Errorf("%v.MinBands() = %d, want %d", tt.interp, got, tt.want)
		}
	}
}

func TestOpenBuffer_PNG(t *testing.T) {
	eng := New()
	opaque := testsupport.PNG(t, testsupport.Solid(8, 6, color.RGBA{10, 20, 30, 255}))

	translucent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	translucent.Set(1, 1, color.NRGBA{255, 0, 0, 128})

	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	gray16 := image.NewGray16(image.Rect(0, 0, 3, 3))

	tests := []struct {
		name   string
		data   []byte
		interp Interpretation
		bands  int
		depth  int
	}{
		{"opaque rgb", opaque, InterpretationSRGB, 3, 8},
		{"rgba", testsupport.PNG(t, translucent), InterpretationSRGB, 4, 8},
		{"gray", testsupport.PNG(t, gray), InterpretationBW, 1, 8},
		{"gray16", testsupport.PNG(t, gray16), InterpretationGrey16, 1, 16},
		{"rgb with trns", testsupport.WithPNGChunk(t, opaque, "tRNS", []byte{0, 10, 0, 20, 0, 30}), InterpretationSRGB, 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, err := eng.OpenBuffer(format.PNG, tt.data, AccessRandom)
			if err != nil {
				t.Fatalf("OpenBuffer failed: %v", err)
			}
			if im.Interpretation() != tt.interp || im.Bands() != tt.bands || im.BitDepth() != tt.depth {
				t.Errorf("got (%v, %d bands, %d bit), want (%v, %d bands, %d bit)",
					im.Interpretation(), im.Bands(), im.BitDepth(), tt.interp, tt.bands, tt.depth)
			}
			if _, ok := im.Blob(BlobExif); ok {
				t.Error("unexpected exif blob")
			}
			if _, ok := im.Blob(BlobICC); ok {
				t.Error("unexpected icc blob")
			}
		})
	}
}

func TestOpenBuffer_PNGMetadata(t *testing.T) {
	profile := bytes.Repeat([]byte("profile-bytes "), 20)
	data := testsupport.PNG(t, testsupport.Solid(4, 4, color.White))
	data = testsupport.WithPNGChunk(t, data, "iCCP", testsupport.ICCP(t, "sRGB", profile))
	data = testsupport.WithPNGChunk(t, data, "eXIf", bytes.TrimPrefix(exif.Minimal(3), exif.Identifier))

	im, err := New().OpenBuffer(format.PNG, data, AccessRandom)
	if err != nil {
		t.Fatalf("OpenBuffer failed: %v", err)
	}

	icc, ok := im.Blob(BlobICC)
	if !ok || !bytes.Equal(icc, profile) {
		t.Errorf("icc blob = %q (ok=%v), want inflated profile", icc, ok)
	}
	blob, ok := im.Blob(BlobExif)
	if !ok {
		t.Fatal("missing exif blob")
	}
	blk, err := exif.Parse(blob)
	if err != nil {
		t.Fatalf("stored exif blob does not parse: %v", err)
	}
	if v, ok := blk.Orientation(); !ok || v != 3 {
		t.Errorf("orientation = (%d, %v), want 3", v, ok)
	}
}

func TestOpenBuffer_JPEG(t *testing.T) {
	eng := New()
	base := testsupport.JPEG(t, testsupport.Quadrants(16, 16))

	iccA := append(append([]byte("ICC_PROFILE\x00"), 1, 2), []byte("first-")...)
	iccB := append(append([]byte("ICC_PROFILE\x00"), 2, 2), []byte("second")...)
	// Inserted after SOI one at a time, so the second chunk ends up first.
	data := testsupport.WithJPEGSegment(t, base, 0xE2, iccA)
	data = testsupport.WithJPEGSegment(t, data, 0xE2, iccB)
	data = testsupport.WithJPEGSegment(t, data, 0xE1, exif.Minimal(6))

	im, err := eng.OpenBuffer(format.JPEG, data, AccessRandom)
	if err != nil {
		t.Fatalf("OpenBuffer failed: %v", err)
	}
	if im.Width() != 16 || im.Height() != 16 {
		t.Errorf("dimensions = %dx%d, want 16x16", im.Width(), im.Height())
	}
	if im.Interpretation() != InterpretationSRGB || im.Bands() != 3 {
		t.Errorf("got (%v, %d), want (srgb, 3)", im.Interpretation(), im.Bands())
	}
	if icc, _ := im.Blob(BlobICC); string(icc) != "first-second" {
		t.Errorf("icc = %q, want chunks joined in sequence order", icc)
	}
	blob, ok := im.Blob(BlobExif)
	if !ok || !bytes.HasPrefix(blob, exif.Identifier) {
		t.Fatalf("exif blob missing or unprefixed: % X", blob)
	}

	grayJPEG := testsupport.JPEG(t, image.NewGray(image.Rect(0, 0, 8, 8)))
	im, err = eng.OpenBuffer(format.JPEG, grayJPEG, AccessRandom)
	if err != nil {
		t.Fatalf("OpenBuffer gray failed: %v", err)
	}
	if im.Interpretation() != InterpretationBW || im.Bands() != 1 {
		t.Errorf("gray jpeg: got (%v, %d), want (b-w, 1)", im.Interpretation(), im.Bands())
	}
}

func TestOpenBuffer_TIFF(t *testing.T) {
	eng := New()

	im, err := eng.OpenBuffer(format.TIFF, testsupport.TIFF(t, image.NewGray(image.Rect(0, 0, 5, 7))), AccessRandom)
	if err != nil {
		t.Fatalf("OpenBuffer gray failed: %v", err)
	}
	if im.Width() != 5 || im.Height() != 7 {
		t.Errorf("dimensions = %dx%d, want 5x7", im.Width(), im.Height())
	}
	if im.Interpretation() != InterpretationBW || im.Bands() != 1 {
		t.Errorf("gray tiff: got (%v, %d), want (b-w, 1)", im.Interpretation(), im.Bands())
	}

	rgba := testsupport.Solid(4, 4, color.RGBA{1, 2, 3, 255})
	im, err = eng.OpenBuffer(format.TIFF, testsupport.TIFF(t, rgba), AccessRandom)
	if err != nil {
		t.Fatalf("OpenBuffer rgba failed: %v", err)
	}
	if im.Interpretation() != InterpretationSRGB || im.Bands() != 4 {
		t.Errorf("rgba tiff: got (%v, %d), want (srgb, 4)", im.Interpretation(), im.Bands())
	}
	if _, ok := im.Blob(BlobExif); ok {
		t.Error("tiff without orientation produced an exif blob")
	}

	// Whole-slide files go through the same TIFF path.
	if _, err := eng.OpenBuffer(format.WholeSlideFallback, testsupport.TIFF(t, rgba), AccessRandom); err != nil {
		t.Errorf("whole-slide open failed: %v", err)
	}
}

func TestOpenBuffer_WebP(t *testing.T) {
	eng := New()

	im, err := eng.OpenBuffer(format.WebP, testsupport.WebPLossy, AccessRandom)
	if err != nil {
		t.Fatalf("OpenBuffer lossy failed: %v", err)
	}
	if im.Width() != 1 || im.Height() != 1 || im.Bands() != 3 {
		t.Errorf("lossy: got %dx%d with %d bands, want 1x1 with 3", im.Width(), im.Height(), im.Bands())
	}

	im, err = eng.OpenBuffer(format.WebP, testsupport.WebPLossless, AccessSequential)
	if err != nil {
		t.Fatalf("OpenBuffer lossless failed: %v", err)
	}
	if im.Bands() != 4 {
		t.Errorf("lossless with alpha bit: got %d bands, want 4", im.Bands())
	}
}

func TestWebPHeader_Chunks(t *testing.T) {
	vp8x := make([]byte, 10)
	vp8x[0] = vp8xAlpha | 0x20 | 0x08
	data := testsupport.WebPContainer(
		testsupport.Chunk{FourCC: "VP8X", Data: vp8x},
		testsupport.Chunk{FourCC: "ICCP", Data: []byte("icc-profile")},
		testsupport.Chunk{FourCC: "EXIF", Data: exif.Minimal(8)},
	)

	hdr := webpHeader(data)
	if hdr.bands != 4 {
		t.Errorf("bands = %d, want 4", hdr.bands)
	}
	if string(hdr.icc) != "icc-profile" {
		t.Errorf("icc = %q", hdr.icc)
	}
	if !bytes.Equal(hdr.exif, exif.Minimal(8)) {
		t.Errorf("exif = % X", hdr.exif)
	}
}

func TestOpenBuffer_Sequential(t *testing.T) {
	data := testsupport.PNG(t, testsupport.Solid(10, 10, color.Black))
	im, err := New().OpenBuffer(format.PNG, data, AccessSequential)
	if err != nil {
		t.Fatalf("OpenBuffer failed: %v", err)
	}
	if im.Access() != AccessSequential {
		t.Errorf("access = %v, want sequential", im.Access())
	}
	if im.pixels != nil {
		t.Error("sequential open decoded pixels eagerly")
	}
	pix, err := im.Pixels()
	if err != nil {
		t.Fatalf("Pixels failed: %v", err)
	}
	if pix.Bounds().Dx() != 10 {
		t.Errorf("width = %d, want 10", pix.Bounds().Dx())
	}
}

func TestOpenBuffer_Errors(t *testing.T) {
	eng := New()
	data := testsupport.PNG(t, testsupport.Solid(10, 10, color.Black))

	if _, err := eng.OpenBuffer(format.Unknown, data, AccessRandom); !errors.Is(err, ErrNoCodec) {
		t.Errorf("unknown format: err = %v, want ErrNoCodec", err)
	}
	if _, err := eng.OpenBuffer(format.PNG, []byte("\x89PNG\r\n\x1a\nbroken"), AccessRandom); err == nil {
		t.Error("corrupt header decoded without error")
	}

	// Truncated pixel data: header is intact, decode fails.
	truncated := data[:len(data)-20]
	if _, err := eng.OpenBuffer(format.PNG, truncated, AccessRandom); err == nil {
		t.Error("truncated random-access png decoded without error")
	}
	im, err := eng.OpenBuffer(format.PNG, truncated, AccessSequential)
	if err != nil {
		t.Fatalf("sequential open should only read the header: %v", err)
	}
	if _, err := im.Pixels(); err == nil {
		t.Error("truncated sequential png decoded without error")
	}

	if _, err := eng.OpenFile(format.PNG, "/nonexistent/image.png", AccessRandom); err == nil {
		t.Error("missing file opened without error")
	}
}

func TestOpenFile_GenericRaster(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	data := testsupport.PNG(t, pal)
	path := testsupport.WriteFile(t, "paletted.png", data)

	im, err := New().OpenFile(format.GenericRasterFallback, path, AccessRandom)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if im.Bands() != 3 || im.Interpretation() != InterpretationSRGB {
		t.Errorf("got (%v, %d), want (srgb, 3)", im.Interpretation(), im.Bands())
	}
}

func TestImage_Blobs(t *testing.T) {
	im := NewImage(image.NewGray(image.Rect(0, 0, 1, 1)), InterpretationBW, 1)

	if _, ok := im.Blob(BlobExif); ok {
		t.Fatal("new image has an exif blob")
	}
	src := []byte{1, 2, 3}
	im.SetBlob(BlobExif, src)
	src[0] = 9
	if got, ok := im.Blob(BlobExif); !ok || got[0] != 1 {
		t.Errorf("SetBlob did not copy: %v", got)
	}
	im.SetBlob(BlobICC, nil)
	if _, ok := im.Blob(BlobICC); ok {
		t.Error("empty blob reported present")
	}
	im.RemoveBlob(BlobExif)
	if _, ok := im.Blob(BlobExif); ok {
		t.Error("RemoveBlob left the blob")
	}
}

func TestImage_Release(t *testing.T) {
	im := NewImage(image.NewGray(image.Rect(0, 0, 2, 2)), InterpretationBW, 1)
	im.SetBlob(BlobExif, exif.Minimal(1))
	im.Release()

	if _, err := im.Pixels(); !errors.Is(err, errReleased) {
		t.Errorf("Pixels after Release: err = %v, want errReleased", err)
	}
	if _, ok := im.Blob(BlobExif); ok {
		t.Error("blob survived Release")
	}
}

func TestDescribeModel(t *testing.T) {
	tests := []struct {
		name   string
		model  color.Model
		interp Interpretation
		bands  int
	}{
		{"gray", color.GrayModel, InterpretationBW, 1},
		{"gray16", color.Gray16Model, InterpretationGrey16, 1},
		{"ycbcr", color.YCbCrModel, InterpretationSRGB, 3},
		{"nrgba", color.NRGBAModel, InterpretationSRGB, 4},
		{"cmyk", color.CMYKModel, InterpretationCMYK, 4},
		{"opaque palette", color.Palette{color.Black, color.White}, InterpretationSRGB, 3},
		{"transparent palette", color.Palette{color.Transparent, color.White}, InterpretationSRGB, 4},
	}
	for _, tt := range tests {
		interp, bands, _ := describeModel(tt.model)
		if interp != tt.interp || bands != tt.bands {
			t.Errorf("%s: got (%v, %d), want (%v, %d)", tt.name, interp, bands, tt.interp, tt.bands)
		}
	}
}
