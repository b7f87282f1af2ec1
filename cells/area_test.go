package cells_test

import (
	"testing"

	"github.com/bloeys/cellmatrix/cells"
)

func TestIntersectIsTotalAndBounded(t *testing.T) {
	w := cells.Area{Top: 0, Left: 0, Lines: 5, Span: 5}

	got := cells.Intersect(w, w)
	if got != w {
		t.Fatalf("Intersect(w, w) = %+v, want %+v", got, w)
	}

	a := cells.Area{Top: 3, Left: 3, Lines: 10, Span: 10}
	got = cells.Intersect(w, a)
	want := cells.Area{Top: 3, Left: 3, Lines: 2, Span: 2}
	if got != want {
		t.Fatalf("Intersect(w, a) = %+v, want %+v", got, want)
	}

	disjoint := cells.Area{Top: 6, Left: 6, Lines: 1, Span: 1}
	got = cells.Intersect(w, disjoint)
	want = cells.Area{Top: 5, Left: 5, Lines: 0, Span: 0}
	if got != want {
		t.Fatalf("Intersect(w, disjoint) = %+v, want %+v", got, want)
	}

	if got.Lines > minUint16(w.Lines, disjoint.Lines) {
		t.Fatalf("intersection lines exceed both operands")
	}
}

func minUint16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}

func TestAreaByteRoundTrip(t *testing.T) {
	a := cells.Area{Top: 1, Left: 2, Lines: 3, Span: 4}
	b := a.Bytes()
	back, err := cells.AreaFromBytes(b[:])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != a {
		t.Fatalf("round trip mismatch: got %+v want %+v", back, a)
	}
}

func TestAreaFromBytesRejectsWrongLength(t *testing.T) {
	_, err := cells.AreaFromBytes([]byte{1, 2, 3})
	if err != cells.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMoveAndResizeDoNotMutate(t *testing.T) {
	a := cells.Area{Top: 1, Left: 1, Lines: 2, Span: 2}
	moved := a.Move(1, 1)

	if a != (cells.Area{Top: 1, Left: 1, Lines: 2, Span: 2}) {
		t.Fatalf("Move mutated its receiver")
	}
	if moved != (cells.Area{Top: 2, Left: 2, Lines: 2, Span: 2}) {
		t.Fatalf("Move produced %+v", moved)
	}

	resized := a.Resize(3, 4)
	if resized != (cells.Area{Top: 1, Left: 1, Lines: 5, Span: 6}) {
		t.Fatalf("Resize produced %+v", resized)
	}
}
