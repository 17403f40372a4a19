// Package exif reads and rewrites the first image file directory (IFD0) of
// an EXIF/TIFF metadata block.
//
// The codec is deliberately narrow. A block is parsed into its byte order,
// header, and IFD0 entry list; entries can be looked up, replaced, inserted,
// or removed; Encode writes the block back. Every byte outside IFD0 is kept
// as-is, so sub-IFDs, maker notes, and thumbnails survive a rewrite because
// their offsets never move.
//
// Blocks may carry the "Exif\x00\x00" identifier used by JPEG APP1 segments
// and WebP EXIF chunks, or start directly at the TIFF header as in PNG eXIf
// chunks and TIFF files. Encode preserves whichever form was parsed.
package exif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalid reports a block that is not a well-formed TIFF structure.
var ErrInvalid = errors.New("exif: invalid block")

// Identifier prefixes EXIF blocks stored in JPEG and WebP containers.
var Identifier = []byte("Exif\x00\x00")

const (
	headerSize = 8
	entrySize  = 12
)

// Entry is one 12-byte IFD record. Value holds the raw value/offset field in
// the block's byte order.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Value [4]byte
}

// Block is a parsed EXIF/TIFF structure.
type Block struct {
	prefixed bool
	order    binary.ByteOrder
	data     []byte // TIFF structure without the identifier

	ifd0     int
	capacity int // entry slots available in place at ifd0
	entries  []Entry
	next     uint32
}

// Parse decodes b, which may or may not start with the EXIF identifier.
// The returned block does not alias b.
func Parse(b []byte) (*Block, error) {
	blk, err := View(b)
	if err != nil {
		return nil, err
	}
	blk.data = append([]byte(nil), blk.data...)
	return blk, nil
}

// View decodes b like Parse but keeps referencing it instead of copying.
// It suits header inspection of large TIFF files; b must not change while
// the block is in use, and the block should only be read.
func View(b []byte) (*Block, error) {
	blk := &Block{}
	if bytes.HasPrefix(b, Identifier) {
		blk.prefixed = true
		b = b[len(Identifier):]
	}
	if len(b) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than a TIFF header", ErrInvalid, len(b))
	}

	switch {
	case b[0] == 'I' && b[1] == 'I':
		blk.order = binary.LittleEndian
	case b[0] == 'M' && b[1] == 'M':
		blk.order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: byte order % X", ErrInvalid, b[:2])
	}
	if blk.order.Uint16(b[2:4]) != 42 {
		return nil, fmt.Errorf("%w: bad TIFF magic number", ErrInvalid)
	}

	blk.data = b
	blk.ifd0 = int(blk.order.Uint32(b[4:8]))
	if blk.ifd0 < headerSize || blk.ifd0+2 > len(b) {
		return nil, fmt.Errorf("%w: IFD0 offset %d out of range", ErrInvalid, blk.ifd0)
	}

	n := int(blk.order.Uint16(b[blk.ifd0:]))
	end := blk.ifd0 + 2 + n*entrySize
	if end > len(b) {
		return nil, fmt.Errorf("%w: IFD0 with %d entries overruns block", ErrInvalid, n)
	}
	blk.capacity = n
	blk.entries = make([]Entry, n)
	for i := range blk.entries {
		p := blk.ifd0 + 2 + i*entrySize
		e := &blk.entries[i]
		e.Tag = blk.order.Uint16(b[p:])
		e.Type = blk.order.Uint16(b[p+2:])
		e.Count = blk.order.Uint32(b[p+4:])
		copy(e.Value[:], b[p+8:p+12])
	}
	// Some writers drop the next-IFD pointer from a lone IFD0; treat it as 0.
	if end+4 <= len(b) {
		blk.next = blk.order.Uint32(b[end:])
	} else {
		blk.capacity = 0
	}
	return blk, nil
}

// New returns an empty little-endian block carrying the EXIF identifier.
func New() *Block {
	data := make([]byte, headerSize)
	copy(data, "II")
	binary.LittleEndian.PutUint16(data[2:], 42)
	binary.LittleEndian.PutUint32(data[4:], headerSize)
	return &Block{
		prefixed: true,
		order:    binary.LittleEndian,
		data:     data,
		ifd0:     headerSize,
	}
}

// ByteOrder returns the block's byte order.
func (b *Block) ByteOrder() binary.ByteOrder { return b.order }

// Entries returns a copy of the IFD0 entries in tag order.
func (b *Block) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

// Lookup returns the IFD0 entry for tag.
func (b *Block) Lookup(tag uint16) (Entry, bool) {
	for _, e := range b.entries {
		if e.Tag == tag {
			return e, true
		}
	}
	return Entry{}, false
}

// Set replaces the entry with the same tag or inserts it in tag order.
// Later duplicates of the tag are dropped.
func (b *Block) Set(e Entry) {
	for i := range b.entries {
		if b.entries[i].Tag != e.Tag {
			continue
		}
		b.entries[i] = e
		kept := b.entries[i+1 : i+1]
		for _, x := range b.entries[i+1:] {
			if x.Tag != e.Tag {
				kept = append(kept, x)
			}
		}
		b.entries = b.entries[:i+1+len(kept)]
		return
	}
	b.entries = append(b.entries, e)
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].Tag < b.entries[j].Tag
	})
}

// Remove deletes every entry for tag and reports whether any was present.
func (b *Block) Remove(tag uint16) bool {
	kept := b.entries[:0]
	for _, e := range b.entries {
		if e.Tag != tag {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(b.entries)
	b.entries = kept
	return removed
}

// Uints returns the numeric values of a BYTE, SHORT or LONG entry. Values
// stored out of line are read from the block; an out-of-range offset yields
// nil.
func (b *Block) Uints(tag uint16) []uint32 {
	e, ok := b.Lookup(tag)
	if !ok {
		return nil
	}
	size := typeSize(e.Type)
	if size == 0 || size > 4 {
		return nil
	}
	raw := b.valueBytes(e)
	if raw == nil {
		return nil
	}
	out := make([]uint32, e.Count)
	for i := range out {
		switch size {
		case 1:
			out[i] = uint32(raw[i])
		case 2:
			out[i] = uint32(b.order.Uint16(raw[i*2:]))
		case 4:
			out[i] = b.order.Uint32(raw[i*4:])
		}
	}
	return out
}

// Bytes returns a copy of the raw value bytes of an entry.
func (b *Block) Bytes(tag uint16) []byte {
	e, ok := b.Lookup(tag)
	if !ok {
		return nil
	}
	raw := b.valueBytes(e)
	if raw == nil {
		return nil
	}
	return append([]byte(nil), raw...)
}

func (b *Block) valueBytes(e Entry) []byte {
	size := typeSize(e.Type)
	if size == 0 {
		return nil
	}
	total := uint64(size) * uint64(e.Count)
	if total <= 4 {
		return e.Value[:total]
	}
	off := uint64(b.order.Uint32(e.Value[:]))
	if off+total > uint64(len(b.data)) {
		return nil
	}
	return b.data[off : off+total]
}

// Encode serializes the block. IFD0 is rewritten in place when the entries
// still fit its original slots; otherwise a new IFD0 is appended and the
// header is pointed at it. The vacated slots of a shrunk IFD0 are zeroed.
func (b *Block) Encode() []byte {
	out := append([]byte(nil), b.data...)
	pos := b.ifd0
	size := 2 + len(b.entries)*entrySize + 4

	inPlace := len(b.entries) <= b.capacity && pos+size <= len(out)
	if !inPlace {
		if len(out)%2 == 1 {
			out = append(out, 0)
		}
		pos = len(out)
		out = append(out, make([]byte, size)...)
		b.order.PutUint32(out[4:8], uint32(pos))
	}

	b.order.PutUint16(out[pos:], uint16(len(b.entries)))
	p := pos + 2
	for _, e := range b.entries {
		b.order.PutUint16(out[p:], e.Tag)
		b.order.PutUint16(out[p+2:], e.Type)
		b.order.PutUint32(out[p+4:], e.Count)
		copy(out[p+8:p+12], e.Value[:])
		p += entrySize
	}
	b.order.PutUint32(out[p:], b.next)
	p += 4

	if inPlace {
		for end := b.ifd0 + 2 + b.capacity*entrySize + 4; p < end; p++ {
			out[p] = 0
		}
	}

	if b.prefixed {
		return append(append([]byte(nil), Identifier...), out...)
	}
	return out
}

func typeSize(t uint16) int {
	switch t {
	case TypeByte, TypeASCII, TypeSByte, TypeUndefined:
		return 1
	case TypeShort, TypeSShort:
		return 2
	case TypeLong, TypeSLong, TypeFloat:
		return 4
	case TypeRational, TypeSRational, TypeDouble:
		return 8
	}
	return 0
}
