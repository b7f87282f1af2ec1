// Package screen implements the rewrite/select/replicate operations over a
// shared, externally-owned cell buffer.
package screen

import (
	"github.com/bloeys/cellmatrix/cells"
)

// Screen is a borrowed, mutable view over a cell buffer with fixed
// dimensions. It does not own Buffer: ownership stays with whoever
// allocated it (typically a Device), and Screen is only valid for as long
// as that allocation is.
//
// Invariant: len(Buffer) >= Dimensions.Lines * Dimensions.Span.
type Screen struct {
	Dimensions cells.Area
	Buffer     []cells.Cell
}

// New wraps buf as a Screen of the given dimensions. It returns
// ErrInsufficientBuffer if buf is too small to hold the declared area.
func New(dimensions cells.Area, buf []cells.Cell) (*Screen, error) {
	if len(buf) < dimensions.Volume() {
		return nil, cells.ErrInsufficientBuffer
	}

	return &Screen{Dimensions: dimensions, Buffer: buf}, nil
}

func (s *Screen) stride() int {
	return int(s.Dimensions.Span)
}

// Stride returns the buffer's row stride in cells (equal to Dimensions.Span).
func (s *Screen) Stride() int {
	return s.stride()
}

// Resize replaces the backing buffer with a freshly allocated one sized
// for (lines, span) and resets Dimensions to {0, 0, lines, span}. The
// previous buffer is discarded; it is the caller's responsibility to have
// flushed anything that still referenced it (pending invalidations,
// in-flight renders).
func (s *Screen) Resize(lines, span uint16) {
	s.Dimensions = cells.Area{Lines: lines, Span: span}
	s.Buffer = make([]cells.Cell, int(lines)*int(span))
}

// Rewrite writes cells from source into the buffer starting at
// target.Top/target.Left, row by row for target.Span cells per row, then
// advances by the buffer's stride. It stops when source is exhausted or
// the write cursor would pass the buffer edge. Rewrite returns target
// unchanged, as a handle the caller can compose with further operations.
func (s *Screen) Rewrite(target cells.Area, source []cells.Cell) cells.Area {
	stride := s.stride()
	i := 0

	for line := int(target.Top); line < int(target.Top)+int(target.Lines); line++ {
		rowStart := line * stride

		for offset := int(target.Left); offset < int(target.Left)+int(target.Span); offset++ {
			if i >= len(source) {
				return target
			}

			idx := rowStart + offset
			if idx < 0 || idx >= len(s.Buffer) {
				return target
			}

			s.Buffer[idx] = source[i]
			i++
		}
	}

	return target
}

// Select materializes the area, clipped to the screen's dimensions, into a
// flat row-major slice of cell values. The result has
// clipped.Lines*clipped.Span elements.
func (s *Screen) Select(area cells.Area) []cells.Cell {
	clipped := cells.Intersect(s.Dimensions, area)
	out := make([]cells.Cell, 0, clipped.Volume())

	cells.ForEach(s.Buffer, s.stride(), clipped, func(c *cells.Cell, line, offset int) bool {
		out = append(out, *c)
		return true
	})

	return out
}

// Replicate copies the source region onto the destination region. Both
// areas are clipped to the screen's dimensions, then their sizes are
// reconciled to the element-wise minimum: if destination has more lines
// (or span) than source, only source's line (or span) count is written,
// and the remainder of destination is left untouched.
//
// Replicate behaves as if source were read into a temporary buffer before
// any destination cell is written: overlapping source/destination ranges
// observe the pre-copy source image, never a partially-overwritten one.
func (s *Screen) Replicate(destination, source cells.Area) error {
	dst := cells.Intersect(s.Dimensions, destination)
	src := cells.Intersect(s.Dimensions, source)

	lines := src.Lines
	if dst.Lines < lines {
		lines = dst.Lines
	}
	span := src.Span
	if dst.Span < span {
		span = dst.Span
	}

	dst.Lines, dst.Span = lines, span
	src.Lines, src.Span = lines, span

	return s.replicate(dst, src)
}

// replicate performs the actual copy for two areas of equal, already
// clipped and reconciled dimensions. It stages the source through a
// temporary buffer so that a destination/source overlap (horizontal
// scroll, vertical scroll) never observes a partially written result --
// a per-row memcpy is not valid here because the destination may overlap
// the source at a horizontal offset within the same row.
func (s *Screen) replicate(dst, src cells.Area) error {
	if dst.Volume() == 0 {
		return nil
	}

	staged := make([]cells.Cell, 0, src.Volume())

	stride := s.stride()
	cells.ForEach(s.Buffer, stride, src, func(c *cells.Cell, line, offset int) bool {
		staged = append(staged, *c)
		return true
	})

	i := 0
	cells.ForEach(s.Buffer, stride, dst, func(c *cells.Cell, line, offset int) bool {
		*c = staged[i]
		i++
		return true
	})

	return nil
}
