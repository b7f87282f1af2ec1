// Package rasterize adapts the reference font-atlas glyph renderer into a
// tilecache.Rasterizer: instead of pre-baking every glyph in a font into
// one big atlas image up front, it draws a single cell's glyph directly
// into the tile slot the cache hands it, on the cache's first acquire of
// that cell's value.
package rasterize

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bloeys/cellmatrix/cells"
	"github.com/bloeys/cellmatrix/tilecache"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ImageSource resolves the negative identifiers Device.Integrate hands
// out for externally-registered images back to their pixels, so a
// pixel-tile Cell can be rasterized by copying from the source image
// rather than drawing a glyph.
type ImageSource interface {
	Lookup(id int32) (image.Image, bool)
}

// GlyphRasterizer draws one cell at a time using a single monospaced
// font face. It intentionally carries none of the reference atlas's
// bidi/run-shaping logic: per-cell glyph inscription never needs to lay
// out more than one codepoint.
type GlyphRasterizer struct {
	face   font.Face
	ascent int

	images ImageSource
}

// NewGlyphRasterizer parses a TTF/TTC file and builds a rasterizer at the
// given point size. images may be nil if the device never integrates
// external pixel images.
func NewGlyphRasterizer(fontBytes []byte, opts *truetype.Options, images ImageSource) (*GlyphRasterizer, error) {
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("rasterize: parse font: %w", err)
	}

	face := truetype.NewFace(f, opts)
	metrics := face.Metrics()

	return &GlyphRasterizer{
		face:   face,
		ascent: metrics.Ascent.Ceil(),
		images: images,
	}, nil
}

// Rasterize implements tilecache.Rasterizer. target must be an
// *image.RGBA (the surfaces a Cache is constructed with are expected to
// be of this concrete type for this rasterizer).
func (r *GlyphRasterizer) Rasterize(target tilecache.Surface, x, y, cellWidth, cellHeight int, cell cells.Cell) error {
	dst, ok := target.(*image.RGBA)
	if !ok {
		return fmt.Errorf("rasterize: target is %T, want *image.RGBA", target)
	}

	bounds := image.Rect(x, y, x+cellWidth, y+cellHeight)

	if !cell.IsGlyph() {
		return r.rasterizePixelTile(dst, bounds, cell)
	}
	return r.rasterizeGlyph(dst, bounds, cell)
}

func (r *GlyphRasterizer) rasterizeGlyph(dst *image.RGBA, bounds image.Rectangle, cell cells.Cell) error {
	fillColor := toNRGBA(cell.Fill)
	draw.Draw(dst, bounds, image.NewUniform(fillColor), image.Point{}, draw.Src)

	if cell.Codepoint < 0 {
		// No glyph to draw (e.g. a registered expression id used as a
		// placeholder); the fill alone stands for the cell.
		return nil
	}

	glyphColor := toNRGBA(cell.GlyphColor)
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(glyphColor),
		Face: r.face,
		Dot:  fixed.P(bounds.Min.X, bounds.Min.Y+r.ascent),
	}
	drawer.DrawString(string(rune(cell.Codepoint)))

	if cell.Traits.Underline != cells.LinePatternVoid {
		drawLine(dst, bounds, bounds.Max.Y-1, toNRGBA(cell.LineColor))
	}
	if cell.Traits.Strikethrough != cells.LinePatternVoid {
		drawLine(dst, bounds, bounds.Min.Y+(bounds.Dy()/2), toNRGBA(cell.LineColor))
	}

	return nil
}

func (r *GlyphRasterizer) rasterizePixelTile(dst *image.RGBA, bounds image.Rectangle, cell cells.Cell) error {
	if r.images == nil {
		return fmt.Errorf("rasterize: cell references an image but no ImageSource is configured")
	}

	src, ok := r.images.Lookup(cell.Codepoint)
	if !ok {
		return fmt.Errorf("rasterize: no image registered for id %d", cell.Codepoint)
	}

	srcRect := image.Rect(int(cell.XTile), int(cell.YTile), int(cell.XTile)+bounds.Dx(), int(cell.YTile)+bounds.Dy())
	draw.Draw(dst, bounds, src, srcRect.Min, draw.Src)
	return nil
}

func drawLine(dst *image.RGBA, bounds image.Rectangle, atY int, c color.NRGBA) {
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		dst.SetNRGBA(x, atY, c)
	}
}

func toNRGBA(c cells.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
