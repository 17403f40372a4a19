// Package format identifies encoded image formats from their leading bytes.
//
// Classification inspects at most the first 12 bytes of a buffer or file and
// matches them against an ordered table of magic-number signatures. The
// first matching signature wins. Nothing is decoded and nothing fails: input
// that is empty, truncated, or unrecognized classifies as Unknown.
//
// # Signature Order
//
//  1. JPEG: FF D8
//  2. PNG:  89 50 4E 47 0D 0A 1A 0A
//  3. WebP: "RIFF" at bytes 0-3 and "WEBP" at bytes 8-11
//  4. TIFF: "II*\0" (little-endian) or "MM\0*" (big-endian)
//
// # Extension Fallback
//
// When a file's bytes match no signature, ClassifyFile falls back to the
// filename extension. The primary extensions map back to JPEG, PNG, WebP and
// TIFF; formats only a general raster library can read map to
// GenericRasterFallback; whole-slide and deep-zoom files map to
// WholeSlideFallback. Buffers have no name and never fall back.
package format
