// Package tilecache implements the hash-indexed, bounded, frequency-ranked
// cache that maps a cell's byte value to a pre-rasterized tile location
// inside a fixed set of backing images. It amortizes the cost of
// rasterizing a styled glyph by rendering it once and reusing the pixels
// on every subsequent occurrence of the same cell value.
package tilecache

import "github.com/bloeys/cellmatrix/assert"

// Cache is one confinement-R tile cache: R images of R x R tiles each,
// for R^3 total physical slots, indexed by a bucketed hash table.
type Cache struct {
	confinement int
	cellWidth   int
	cellHeight  int

	surfaces   []Surface
	rasterizer Rasterizer

	buckets []bucket

	imageNext  int
	imageLimit int
}

// NewCache builds a cache with confinement r: r images (one Surface
// each, supplied by the caller -- a display backend owns the actual
// pixel storage), each holding an r x r grid of cellWidth x cellHeight
// tiles. Distinct cell values are rasterized into these tiles on demand
// via rasterizer.
func NewCache(r, cellWidth, cellHeight int, surfaces []Surface, rasterizer Rasterizer) (*Cache, error) {
	if r <= 0 {
		return nil, ErrNoCapacity
	}
	if len(surfaces) != r {
		return nil, ErrSurfaceCount
	}

	buckets := r * ((r + 1) / 2) // B = R * ceil(R/2)

	return &Cache{
		confinement: r,
		cellWidth:   cellWidth,
		cellHeight:  cellHeight,
		surfaces:    surfaces,
		rasterizer:  rasterizer,
		buckets:     make([]bucket, buckets),
		imageNext:   0,
		imageLimit:  r * r * r,
	}, nil
}

// unpackSlot linearizes a physical slot index into its (image, line,
// column) coordinates. Slots never move once assigned to a record.
func (c *Cache) unpackSlot(slot int) (image, line, column uint16) {
	assert.T(slot >= 0 && slot < c.imageLimit, "tilecache: slot %d out of range [0,%d)", slot, c.imageLimit)

	perImage := c.confinement * c.confinement
	img := slot / perImage
	rem := slot % perImage
	return uint16(img), uint16(rem / c.confinement), uint16(rem % c.confinement)
}

// Acquire returns the pixel-space location of cell's tile: the image it
// lives in, and its (x, y) pixel offset within that image. If cell has
// never been seen (or its prior record was evicted), Acquire allocates a
// slot and rasterizes the glyph into it exactly once; otherwise it
// reuses the existing tile without invoking the rasterizer.
func (c *Cache) Acquire(cell Cell) (image, x, y int, err error) {
	bi := hashCell(cell, len(c.buckets))
	b := &c.buckets[bi]

	for i := 0; i < b.count; i++ {
		hit := b.records[i].Key.Equal(cell)
		if hit {
			b.records[i].Hits++
		} else {
			b.records[i].Passes++
		}

		landed := prioritize(b, i-1, i)
		if hit {
			r := &b.records[landed]
			return int(r.ImageIndex), int(r.Column) * c.cellWidth, int(r.Line) * c.cellHeight, nil
		}
	}

	r, err := b.allocate(c, cell)
	if err != nil {
		return 0, 0, 0, err
	}

	target := c.surfaces[r.ImageIndex]
	x = int(r.Column) * c.cellWidth
	y = int(r.Line) * c.cellHeight
	if err := c.rasterizer.Rasterize(target, x, y, c.cellWidth, c.cellHeight, cell); err != nil {
		return 0, 0, 0, err
	}

	return int(r.ImageIndex), x, y, nil
}
