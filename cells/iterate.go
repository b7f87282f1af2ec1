package cells

// Visit is called once per cell inside a region, in row-major order, with
// the cell's absolute line and column offset. Returning false stops the
// iteration early.
type Visit func(c *Cell, line, offset int) (cont bool)

// ForEach iterates area over buf, a cell image with the given stride
// (cells per row), invoking fn for every cell inside area in row-major
// order. It performs no allocation and holds no state beyond the loop
// counters, so that external serialization of the same region in the same
// order is deterministic.
//
// ForEach does not clip area to the buffer: callers that might receive an
// out-of-bounds area (e.g. from an untrusted index) must Intersect it
// against the owning Screen's dimensions first.
func ForEach(buf []Cell, stride int, area Area, fn Visit) {
	top := int(area.Top)
	left := int(area.Left)
	lines := int(area.Lines)
	span := int(area.Span)

	for line := top; line < top+lines; line++ {
		rowStart := line * stride
		for offset := left; offset < left+span; offset++ {
			idx := rowStart + offset
			if idx < 0 || idx >= len(buf) {
				return
			}

			if !fn(&buf[idx], line, offset) {
				return
			}
		}
	}
}

// ForAll iterates the entire lines x span rectangle starting at (0,0).
func ForAll(buf []Cell, lines, span int, fn Visit) {
	ForEach(buf, span, Area{Lines: uint16(lines), Span: uint16(span)}, fn)
}
