package cells_test

import (
	"testing"

	"github.com/bloeys/cellmatrix/cells"
)

func TestEmptyCellIsZeroBytes(t *testing.T) {
	var zero [cells.Size]byte
	got := cells.Empty.Bytes()

	if got != zero {
		t.Fatalf("expected Empty.Bytes() to be all-zero, got %v", got)
	}

	back := cells.CellFromBytes(zero)
	if !back.Equal(cells.Empty) {
		t.Fatalf("zero bytes decoded to %+v, want cells.Empty", back)
	}
	if back.Codepoint != -1 {
		t.Fatalf("expected codepoint -1 for zero bytes, got %d", back.Codepoint)
	}
}

func TestCellByteRoundTrip(t *testing.T) {
	c := cells.Cell{
		Codepoint:  'Z',
		Fill:       cells.Color{R: 10, G: 20, B: 30, A: 255},
		Window:     0,
		Traits:     cells.Traits{Italic: true, Underline: cells.LinePatternWavy, Strikethrough: cells.LinePatternDashed},
		GlyphColor: cells.Color{R: 200, G: 1, B: 2, A: 128},
		LineColor:  cells.Color{R: 5, G: 6, B: 7, A: 0},
	}

	back := cells.CellFromBytes(c.Bytes())
	if !back.Equal(c) {
		t.Fatalf("round trip mismatch: got %+v want %+v", back, c)
	}
	if back != c {
		t.Fatalf("round trip produced a different value: got %+v want %+v", back, c)
	}
}

func TestCellEqualityIsByteEquality(t *testing.T) {
	a := cells.Cell{Codepoint: 'a', Fill: cells.Opaque, GlyphColor: cells.Opaque, LineColor: cells.Opaque}
	b := a
	b.XTile = 0 // no-op change, still equal

	if !a.Equal(b) {
		t.Fatalf("expected equal cells to compare equal")
	}

	b.Codepoint = 'b'
	if a.Equal(b) {
		t.Fatalf("expected different codepoints to compare unequal")
	}
}

func TestImageTileDiscriminant(t *testing.T) {
	glyph := cells.Cell{Window: 0}
	if !glyph.IsGlyph() {
		t.Fatalf("window 0 should be a glyph cell")
	}

	tile := cells.Cell{Window: cells.ImageTile, XTile: 3, YTile: 4}
	if tile.IsGlyph() {
		t.Fatalf("window == ImageTile should not be a glyph cell")
	}
}
