package cells

import "encoding/binary"

// GlyphWindowBits is the conceptual width of the Cell.Window discriminant
// in the reference packed layout. MaximumGlyphWidth is the largest
// sub-section index a multi-cell glyph can address; ImageTile is the
// sentinel Window value marking a Cell as a pixel-tile reference rather
// than a glyph.
const (
	GlyphWindowBits   = 4
	ImageTile         = GlyphWindowBits * GlyphWindowBits
	MaximumGlyphWidth = ImageTile - 1
)

// Cell is the fixed-size value describing one addressable slot on screen.
// It is a discriminated union keyed on Window: when Window != ImageTile the
// cell is a glyph (Traits/GlyphColor/LineColor are meaningful); otherwise
// it is a pixel-tile reference (XTile/YTile are meaningful) into the image
// registered under Codepoint (see Device.Integrate).
//
// Cell is a plain value type: copying it copies the whole cell, and two
// cells are equal iff their Bytes() images are equal -- this is what the
// tile cache uses as its lookup key.
type Cell struct {
	Codepoint int32
	Fill      Color
	Window    uint8

	// Glyph variant (meaningful when Window != ImageTile).
	Traits     Traits
	GlyphColor Color
	LineColor  Color

	// Pixel variant (meaningful when Window == ImageTile).
	XTile uint16
	YTile uint16
}

// Size is the byte length of a Cell's packed wire image.
const Size = 4 /*codepoint*/ + 4 /*fill*/ + 1 /*window*/ + 2 /*traits*/ + 4 /*glyph color*/ + 4 /*line color*/ + 2 /*xtile*/ + 2 /*ytile*/

// IsGlyph reports whether the cell carries a glyph (as opposed to a pixel
// tile reference).
func (c Cell) IsGlyph() bool {
	return c.Window != ImageTile
}

// Empty is the logical value a zero-initialized packed Cell buffer decodes
// to: no codepoint, opaque fill/glyph/line colors, no traits, window 0.
var Empty = Cell{
	Codepoint:  -1,
	Fill:       Opaque,
	GlyphColor: Opaque,
	LineColor:  Opaque,
}

// Bytes packs the cell into its fixed-size wire image. Byte-equality of
// two images implies the two source Cells are value-equal (and vice
// versa), which is the property the tile cache relies on for its hash key.
func (c Cell) Bytes() [Size]byte {
	var b [Size]byte

	binary.LittleEndian.PutUint32(b[0:4], uint32(c.Codepoint+1))
	b[4] = c.Fill.R
	b[5] = c.Fill.G
	b[6] = c.Fill.B
	b[7] = packedAlpha(c.Fill.A)
	b[8] = c.Window

	tb := c.Traits.pack()
	b[9] = tb[0]
	b[10] = tb[1]

	b[11] = c.GlyphColor.R
	b[12] = c.GlyphColor.G
	b[13] = c.GlyphColor.B
	b[14] = packedAlpha(c.GlyphColor.A)

	b[15] = c.LineColor.R
	b[16] = c.LineColor.G
	b[17] = c.LineColor.B
	b[18] = packedAlpha(c.LineColor.A)

	binary.LittleEndian.PutUint16(b[19:21], c.XTile)
	binary.LittleEndian.PutUint16(b[21:23], c.YTile)

	return b
}

// CellFromBytes decodes a packed wire image produced by Cell.Bytes.
func CellFromBytes(b [Size]byte) Cell {
	return Cell{
		Codepoint: int32(binary.LittleEndian.Uint32(b[0:4])) - 1,
		Fill:      Color{R: b[4], G: b[5], B: b[6], A: unpackAlpha(b[7])},
		Window:    b[8],
		Traits:    unpackTraits([2]byte{b[9], b[10]}),
		GlyphColor: Color{
			R: b[11], G: b[12], B: b[13], A: unpackAlpha(b[14]),
		},
		LineColor: Color{
			R: b[15], G: b[16], B: b[17], A: unpackAlpha(b[18]),
		},
		XTile: binary.LittleEndian.Uint16(b[19:21]),
		YTile: binary.LittleEndian.Uint16(b[21:23]),
	}
}

// Equal reports whether two cells have identical wire images.
func (c Cell) Equal(o Cell) bool {
	return c.Bytes() == o.Bytes()
}
