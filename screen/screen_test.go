package screen_test

import (
	"testing"

	"github.com/bloeys/cellmatrix/cells"
	"github.com/bloeys/cellmatrix/screen"
)

func letterCell(r rune) cells.Cell {
	c := cells.Empty
	c.Codepoint = int32(r)
	return c
}

func lettersEqual(got []cells.Cell, want string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, r := range want {
		if got[i].Codepoint != int32(r) {
			return false
		}
	}
	return true
}

// Scenario A -- Write & select.
func TestWriteAndSelect(t *testing.T) {
	dims := cells.Area{Lines: 2, Span: 3}
	s, err := screen.New(dims, make([]cells.Cell, dims.Volume()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := []cells.Cell{letterCell('A'), letterCell('B'), letterCell('C'), letterCell('D'), letterCell('E'), letterCell('F')}
	s.Rewrite(cells.Area{Top: 0, Left: 0, Lines: 2, Span: 3}, src)

	got := s.Select(cells.Area{Top: 0, Left: 0, Lines: 2, Span: 3})
	if !lettersEqual(got, "ABCDEF") {
		t.Fatalf("select(full) = %v, want ABCDEF", got)
	}

	got = s.Select(cells.Area{Top: 0, Left: 1, Lines: 2, Span: 1})
	if !lettersEqual(got, "BE") {
		t.Fatalf("select(col 1) = %v, want BE", got)
	}
}

// Scenario B -- Replicate with overlap.
func TestReplicateOverlap(t *testing.T) {
	dims := cells.Area{Lines: 1, Span: 5}
	s, err := screen.New(dims, make([]cells.Cell, dims.Volume()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := []cells.Cell{letterCell('1'), letterCell('2'), letterCell('3'), letterCell('4'), letterCell('5')}
	s.Rewrite(cells.Area{Top: 0, Left: 0, Lines: 1, Span: 5}, src)

	err = s.Replicate(cells.Area{Top: 0, Left: 1, Lines: 1, Span: 4}, cells.Area{Top: 0, Left: 0, Lines: 1, Span: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := s.Select(dims)
	if !lettersEqual(got, "11234") {
		t.Fatalf("replicate overlap = %v, want 11234", got)
	}
}

// Property: rewrite/select round trip for a non-overlapping area.
func TestRewriteSelectRoundTrip(t *testing.T) {
	dims := cells.Area{Lines: 4, Span: 4}
	s, _ := screen.New(dims, make([]cells.Cell, dims.Volume()))

	area := cells.Area{Top: 1, Left: 1, Lines: 2, Span: 2}
	src := []cells.Cell{letterCell('a'), letterCell('b'), letterCell('c'), letterCell('d')}

	s.Rewrite(area, src)
	got := s.Select(area)

	for i := range src {
		if got[i].Codepoint != src[i].Codepoint {
			t.Fatalf("round trip mismatch at %d: got %v want %v", i, got[i].Codepoint, src[i].Codepoint)
		}
	}
}

// Property: replicate tie-break -- only the smaller dimension is written,
// the remainder of the larger side is untouched.
func TestReplicateSizeMismatchTieBreak(t *testing.T) {
	dims := cells.Area{Lines: 3, Span: 3}
	s, _ := screen.New(dims, make([]cells.Cell, dims.Volume()))

	src := []cells.Cell{letterCell('x')}
	s.Rewrite(cells.Area{Top: 0, Left: 0, Lines: 1, Span: 1}, src)
	s.Rewrite(cells.Area{Top: 2, Left: 0, Lines: 1, Span: 1}, []cells.Cell{letterCell('z')})

	// destination has more lines than source: only 1 row should move.
	err := s.Replicate(cells.Area{Top: 1, Left: 0, Lines: 2, Span: 1}, cells.Area{Top: 0, Left: 0, Lines: 1, Span: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := s.Select(cells.Area{Top: 1, Left: 0, Lines: 1, Span: 1})
	if got[0].Codepoint != 'x' {
		t.Fatalf("expected row 1 to receive the copy, got %v", got[0].Codepoint)
	}

	// The untouched remainder (row 2, which still holds 'z') must be intact.
	got = s.Select(cells.Area{Top: 2, Left: 0, Lines: 1, Span: 1})
	if got[0].Codepoint != 'z' {
		t.Fatalf("expected untouched remainder to be preserved, got %v", got[0].Codepoint)
	}
}

func TestNewRejectsUndersizedBuffer(t *testing.T) {
	_, err := screen.New(cells.Area{Lines: 2, Span: 2}, make([]cells.Cell, 3))
	if err != cells.ErrInsufficientBuffer {
		t.Fatalf("expected ErrInsufficientBuffer, got %v", err)
	}
}

// Scenario F -- Resize.
func TestResize(t *testing.T) {
	s, _ := screen.New(cells.Area{Lines: 1, Span: 1}, make([]cells.Cell, 1))
	s.Resize(10, 20)

	if s.Dimensions != (cells.Area{Lines: 10, Span: 20}) {
		t.Fatalf("unexpected dimensions after resize: %+v", s.Dimensions)
	}

	target := cells.Area{Top: 9, Left: 19, Lines: 1, Span: 1}
	s.Rewrite(target, []cells.Cell{letterCell('q')})

	got := s.Select(target)
	if len(got) != 1 || got[0].Codepoint != 'q' {
		t.Fatalf("rewrite after resize failed: %v", got)
	}
}
