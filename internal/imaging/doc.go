// Package imaging turns raw image bytes or files into decoded handles with
// normalized metadata.
//
// A Loader classifies its input with the format package, opens it through
// the decode engine, and returns a Handle. The Handle answers the questions
// downstream processing needs before touching pixels: does the image carry
// an embedded color profile, does it have an alpha channel, and which EXIF
// orientation does it declare. Orientation can also be rewritten or removed.
//
// # Ownership
//
// A Handle belongs to the caller that received it. Nothing in this package
// keeps a reference after Load or LoadFile returns. Call Close when done;
// Close runs any callbacks registered with OnRelease exactly once.
//
// # Thread Safety
//
// Different handles may be used concurrently. Calls on the same handle must
// be serialized by the caller; the metadata methods do no locking.
//
// # Alpha Detection
//
// HasAlpha does not trust format flags. An image has alpha when its band
// count exceeds what its color-space interpretation needs: more than one
// band for grey, more than three for RGB, more than four for CMYK.
//
// # Orientation
//
// Orientation codes follow the EXIF table (1 = upright through 8). Reads
// never fail: a missing, unparseable, zero, or out-of-range tag reads as
// OrientationAbsent. Writes reject codes outside 1..8 and otherwise replace
// the EXIF block atomically: the new block is built in full before it is
// handed back to the engine, so a failed write leaves the previous block.
//
// # Error Handling
//
// Load failures wrap one of ErrUnsupportedFormat or ErrDecode, and decode
// failures also wrap the engine's own error. Use errors.Is to tell them
// apart. Pixel reads and orientation writes on a closed handle report
// ErrClosed.
package imaging
