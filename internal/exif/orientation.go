package exif

// Orientation returns the IFD0 orientation code. ok is false when the tag is
// missing, has a non-integer type, or holds 0.
func (b *Block) Orientation() (v uint16, ok bool) {
	vals := b.Uints(TagOrientation)
	if len(vals) == 0 || vals[0] == 0 || vals[0] > 0xFFFF {
		return 0, false
	}
	return uint16(vals[0]), true
}

// SetOrientation writes the orientation tag as a single SHORT, replacing any
// existing entry.
func (b *Block) SetOrientation(v uint16) {
	e := Entry{Tag: TagOrientation, Type: TypeShort, Count: 1}
	b.order.PutUint16(e.Value[:2], v)
	b.Set(e)
}

// RemoveOrientation deletes the orientation tag and reports whether it was
// present.
func (b *Block) RemoveOrientation() bool {
	return b.Remove(TagOrientation)
}

// Minimal returns the smallest block a standard reader accepts that carries
// only the given orientation: the EXIF identifier, a little-endian TIFF
// header, and an IFD0 with one SHORT entry and no successor.
func Minimal(v uint16) []byte {
	b := New()
	b.SetOrientation(v)
	return b.Encode()
}
