package tilecache

import (
	"testing"

	"github.com/bloeys/cellmatrix/cells"
)

type countingRasterizer struct {
	calls int
}

func (r *countingRasterizer) Rasterize(target Surface, x, y, cw, ch int, cell Cell) error {
	r.calls++
	return nil
}

func newTestCache(t *testing.T, r int, ras Rasterizer) *Cache {
	t.Helper()
	surfaces := make([]Surface, r)
	for i := range surfaces {
		surfaces[i] = i
	}
	c, err := NewCache(r, 8, 16, surfaces, ras)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return c
}

func letterCell(ch rune) Cell {
	c := cells.Empty
	c.Codepoint = int32(ch)
	return c
}

func TestAcquireIsIdempotentWithoutEviction(t *testing.T) {
	ras := &countingRasterizer{}
	c := newTestCache(t, 4, ras)

	cell := letterCell('Q')

	img1, x1, y1, err := c.Acquire(cell)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if ras.calls != 1 {
		t.Fatalf("rasterize calls = %d, want 1", ras.calls)
	}

	for i := 0; i < 5; i++ {
		img2, x2, y2, err := c.Acquire(cell)
		if err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		if img1 != img2 || x1 != x2 || y1 != y2 {
			t.Fatalf("Acquire(%v) round %d = (%d,%d,%d), want (%d,%d,%d)", cell, i, img2, x2, y2, img1, x1, y1)
		}
	}
	if ras.calls != 1 {
		t.Fatalf("rasterize called %d times across repeated identical acquires, want 1", ras.calls)
	}
}

func TestAcquireDistinctCellsGetDistinctSlots(t *testing.T) {
	ras := &countingRasterizer{}
	c := newTestCache(t, 4, ras)

	seen := map[[3]int]bool{}
	for _, ch := range []rune("abcdefgh") {
		img, x, y, err := c.Acquire(letterCell(ch))
		if err != nil {
			t.Fatalf("Acquire(%q): %v", ch, err)
		}
		key := [3]int{img, x, y}
		if seen[key] {
			t.Fatalf("Acquire(%q) reused slot %v already bound to a different cell", ch, key)
		}
		seen[key] = true
	}
}

func TestAcquireRepeatedAreaRastersOnce(t *testing.T) {
	ras := &countingRasterizer{}
	c := newTestCache(t, 4, ras)

	area := [3][3]Cell{}
	for line := range area {
		for col := range area[line] {
			area[line][col] = letterCell('Z')
		}
	}

	for pass := 0; pass < 3; pass++ {
		for _, row := range area {
			for _, cell := range row {
				if _, _, _, err := c.Acquire(cell); err != nil {
					t.Fatalf("Acquire: %v", err)
				}
			}
		}
	}

	if ras.calls != 1 {
		t.Fatalf("rasterize called %d times over a repeated identical 3x3 area, want 1", ras.calls)
	}
}

func TestNewCacheRejectsMismatchedSurfaces(t *testing.T) {
	if _, err := NewCache(4, 8, 16, make([]Surface, 2), &countingRasterizer{}); err != ErrSurfaceCount {
		t.Fatalf("expected ErrSurfaceCount, got %v", err)
	}
}

func TestNewCacheRejectsNonPositiveConfinement(t *testing.T) {
	if _, err := NewCache(0, 8, 16, nil, &countingRasterizer{}); err != ErrNoCapacity {
		t.Fatalf("expected ErrNoCapacity, got %v", err)
	}
}

func TestEvictionReusesSlotsUnderPressure(t *testing.T) {
	ras := &countingRasterizer{}
	r := 2 // 8 physical slots total, tiny bucket table -- forces eviction quickly
	c := newTestCache(t, r, ras)

	for i := 0; i < 64; i++ {
		if _, _, _, err := c.Acquire(letterCell(rune('a' + i%26))); err != nil {
			t.Fatalf("Acquire iteration %d: %v", i, err)
		}
	}
	// No panic and no error across heavy churn is the property under test:
	// the cache must shrink in place rather than fail once physical slots
	// are exhausted.
}
