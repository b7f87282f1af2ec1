// Package render implements the invalidation-list renderer: it drains a
// flat, append-only list of invalidated cell areas, looks each cell's
// tile up in a tilecache.Cache, and blits the result into a working
// pixel surface using a source compositing operator. Dispatch presents
// that working surface; replicate copies a pixel region while keeping
// the working surface consistent with the cell buffer it mirrors.
package render

import (
	"image"
	"image/draw"

	"github.com/bloeys/cellmatrix/cells"
	"github.com/bloeys/cellmatrix/screen"
	"github.com/bloeys/cellmatrix/tilecache"
)

// Images resolves a tile cache image index to the concrete surface that
// backs it, so the renderer can blit out of it.
type Images interface {
	Image(index int) *image.RGBA
}

// Renderer drains invalidations from a Screen's cell buffer into a
// working *image.RGBA, consulting a tile cache for each cell's pixels.
type Renderer struct {
	cache  *tilecache.Cache
	images Images

	working *image.RGBA

	cellWidth  int
	cellHeight int

	invalidations []cells.Area
}

// New builds a Renderer targeting working, with tiles resolved through
// cache and images.
func New(cache *tilecache.Cache, images Images, working *image.RGBA, cellWidth, cellHeight int) *Renderer {
	return &Renderer{
		cache:      cache,
		images:     images,
		working:    working,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
}

// Invalidate appends area to the pending-invalidation list. It does not
// itself touch any pixels; Render does the actual work.
func (r *Renderer) Invalidate(area cells.Area) {
	r.invalidations = append(r.invalidations, area)
}

// Pending reports whether there are unrendered invalidations.
func (r *Renderer) Pending() bool {
	return len(r.invalidations) > 0
}

// Render processes every pending invalidation against s, blitting each
// cell's tile into the working surface, then truncates the invalidation
// list. Rendering the same unchanged area twice must be idempotent: the
// tile cache guarantees a repeat Acquire for an unchanged cell value
// returns the same tile without re-rasterizing, and the blit here always
// overwrites (never blends) the destination rectangle.
func (r *Renderer) Render(s *screen.Screen) error {
	var firstErr error

	for _, area := range r.invalidations {
		clipped := cells.Intersect(s.Dimensions, area)

		cells.ForEach(s.Buffer, s.Stride(), clipped, func(c *cells.Cell, line, offset int) bool {
			if err := r.blitCell(*c, line, offset); err != nil {
				if firstErr == nil {
					firstErr = err
				}
			}
			return true
		})
	}

	r.invalidations = r.invalidations[:0]
	return firstErr
}

func (r *Renderer) blitCell(c cells.Cell, line, offset int) error {
	imageIdx, x, y, err := r.cache.Acquire(c)
	if err != nil {
		return err
	}

	src := r.images.Image(imageIdx)
	srcRect := image.Rect(x, y, x+r.cellWidth, y+r.cellHeight)

	destX := offset * r.cellWidth
	destY := line * r.cellHeight
	destRect := image.Rect(destX, destY, destX+r.cellWidth, destY+r.cellHeight)

	draw.Draw(r.working, destRect, src, srcRect.Min, draw.Src)
	return nil
}

// Replicate performs the pixel-surface side of a screen region copy. It
// must be called only after the caller has flushed pending invalidations
// covering the source region (Render), so the source pixels reflect the
// latest cell values; it stages the source rectangle through a temporary
// buffer so an overlapping destination doesn't alias a partially
// overwritten source, mirroring screen.Screen.Replicate's contract at
// the pixel level.
func (r *Renderer) Replicate(destination, source cells.Area) {
	srcRect := image.Rect(
		int(source.Left)*r.cellWidth, int(source.Top)*r.cellHeight,
		int(source.Left+source.Span)*r.cellWidth, int(source.Top+source.Lines)*r.cellHeight,
	)

	staged := image.NewRGBA(srcRect.Sub(srcRect.Min))
	draw.Draw(staged, staged.Bounds(), r.working, srcRect.Min, draw.Src)

	destRect := image.Rect(
		int(destination.Left)*r.cellWidth, int(destination.Top)*r.cellHeight,
		int(destination.Left+destination.Span)*r.cellWidth, int(destination.Top+destination.Lines)*r.cellHeight,
	)
	draw.Draw(r.working, destRect, staged, image.Point{}, draw.Src)
}

// Working exposes the working surface for a device embodiment's dispatch
// step (presenting it to the platform's output surface).
func (r *Renderer) Working() *image.RGBA {
	return r.working
}
