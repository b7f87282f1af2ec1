package cells

import "encoding/binary"

// Area is a rectangular region in cell coordinates: top_offset, left_offset,
// lines, span. All four fields are 16-bit unsigned.
type Area struct {
	Top   uint16
	Left  uint16
	Lines uint16
	Span  uint16
}

// Right and Bottom match the reference macros: they saturate at 1 for a
// zero-volume dimension so a single-cell area still names a coordinate.
func (a Area) Right() int {
	span := a.Span
	if span < 1 {
		span = 1
	}
	return int(a.Left) + int(span) - 1
}

func (a Area) Bottom() int {
	lines := a.Lines
	if lines < 1 {
		lines = 1
	}
	return int(a.Top) + int(lines) - 1
}

// HorizontalLimit and VerticalLimit are the exclusive bounds of the area.
func (a Area) HorizontalLimit() int { return int(a.Left) + int(a.Span) }
func (a Area) VerticalLimit() int   { return int(a.Top) + int(a.Lines) }

// Volume is the number of cells in the area.
func (a Area) Volume() int { return int(a.Lines) * int(a.Span) }

// Move returns a copy of the area shifted by (v, h) lines/columns. Area
// values are immutable from the hosted application's perspective: Move
// never mutates its receiver.
func (a Area) Move(v, h int) Area {
	return Area{
		Top:   uint16(int(a.Top) + v),
		Left:  uint16(int(a.Left) + h),
		Lines: a.Lines,
		Span:  a.Span,
	}
}

// Resize returns a copy of the area with its dimensions adjusted by
// (dl, ds) lines/columns.
func (a Area) Resize(dl, ds int) Area {
	return Area{
		Top:   a.Top,
		Left:  a.Left,
		Lines: uint16(int(a.Lines) + dl),
		Span:  uint16(int(a.Span) + ds),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Intersect clips latter to bounds. It is total: defined for any two
// areas, including disjoint ones, in which case it returns a zero-volume
// area anchored at the clipped corner. Intersect(bounds, bounds) == bounds.
func Intersect(bounds, latter Area) Area {
	ylimit := int(bounds.Top) + int(bounds.Lines)
	xlimit := int(bounds.Left) + int(bounds.Span)

	ymax := maxInt(int(bounds.Top), int(latter.Top))
	xmax := maxInt(int(bounds.Left), int(latter.Left))

	y := minInt(ylimit, ymax)
	x := minInt(xlimit, xmax)

	lines := minInt(ylimit-int(latter.Top), int(latter.Lines))
	span := minInt(xlimit-int(latter.Left), int(latter.Span))

	if lines < 0 {
		lines = 0
	}
	if span < 0 {
		span = 0
	}

	return Area{
		Top:   uint16(y),
		Left:  uint16(x),
		Lines: uint16(lines),
		Span:  uint16(span),
	}
}

// AreaSize is the byte length of Area's binary format.
const AreaSize = 8

// Bytes packs the area as four little-endian uint16 fields, in
// top_offset, left_offset, lines, span order.
func (a Area) Bytes() [AreaSize]byte {
	var b [AreaSize]byte
	binary.LittleEndian.PutUint16(b[0:2], a.Top)
	binary.LittleEndian.PutUint16(b[2:4], a.Left)
	binary.LittleEndian.PutUint16(b[4:6], a.Lines)
	binary.LittleEndian.PutUint16(b[6:8], a.Span)
	return b
}

// AreaFromBytes decodes an Area produced by Area.Bytes. It returns
// ErrInvalidInput if buf is not exactly AreaSize bytes.
func AreaFromBytes(buf []byte) (Area, error) {
	if len(buf) != AreaSize {
		return Area{}, ErrInvalidInput
	}

	return Area{
		Top:   binary.LittleEndian.Uint16(buf[0:2]),
		Left:  binary.LittleEndian.Uint16(buf[2:4]),
		Lines: binary.LittleEndian.Uint16(buf[4:6]),
		Span:  binary.LittleEndian.Uint16(buf[6:8]),
	}, nil
}
