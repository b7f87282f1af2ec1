package host

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/bloeys/cellmatrix/cells"
	"github.com/bloeys/cellmatrix/controller"
	"github.com/bloeys/cellmatrix/device"
	"github.com/bloeys/cellmatrix/render"
	"github.com/bloeys/cellmatrix/screen"
	"github.com/bloeys/cellmatrix/tilecache"
)

type fakeRasterizer struct{}

func (fakeRasterizer) Rasterize(target tilecache.Surface, x, y, cw, ch int, cell cells.Cell) error {
	return nil
}

type fakeBackend struct {
	events []controller.Status
}

func (f *fakeBackend) NextEvent(ctx context.Context) (controller.Status, []byte, error) {
	if len(f.events) == 0 {
		return controller.Status{}, nil, errors.New("no more events")
	}
	e := f.events[0]
	f.events = f.events[1:]
	return e, nil, nil
}

func (f *fakeBackend) Present(working *image.RGBA) error { return nil }
func (f *fakeBackend) Synchronize() error                { return nil }
func (f *fakeBackend) Transmit(data []byte) error         { return nil }
func (f *fakeBackend) ResizeScreen(lines, span uint16) (uint16, uint16, error) {
	return lines, span, nil
}

type fixedImages struct{ images []*image.RGBA }

func (f fixedImages) Image(i int) *image.RGBA { return f.images[i] }

func newTestDevice(t *testing.T) *device.Device {
	t.Helper()
	const cw, ch, r = 4, 8, 2

	surfaces := make([]tilecache.Surface, r)
	images := make([]*image.RGBA, r)
	for i := range surfaces {
		images[i] = image.NewRGBA(image.Rect(0, 0, r*cw, r*ch))
		surfaces[i] = images[i]
	}
	cache, err := tilecache.NewCache(r, cw, ch, surfaces, fakeRasterizer{})
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	dims := cells.Area{Lines: 4, Span: 4}
	s, err := screen.New(dims, make([]cells.Cell, dims.Volume()))
	if err != nil {
		t.Fatalf("screen.New: %v", err)
	}

	working := image.NewRGBA(image.Rect(0, 0, int(dims.Span)*cw, int(dims.Lines)*ch))
	rnd := render.New(cache, fixedImages{images}, working, cw, ch)

	return device.New(&fakeBackend{}, s, rnd, cw, ch)
}

func letterCell(ch rune) cells.Cell {
	c := cells.Empty
	c.Codepoint = int32(ch)
	return c
}

func TestRunDeliversSyntheticResizeThenAppRunsOnce(t *testing.T) {
	d := newTestDevice(t)

	calls := 0
	err := Run(context.Background(), d, func(term *Terminal) error {
		calls++
		if term.Status().Dispatch != controller.DispatchScreenResize {
			t.Fatalf("Status().Dispatch = %v, want DispatchScreenResize", term.Status().Dispatch)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("app called %d times, want 1", calls)
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	d := newTestDevice(t)
	term := &Terminal{d: d}

	area := cells.Area{Lines: 1, Span: 2}
	written := term.Write(area, []Cell{letterCell('a'), letterCell('b')})
	if written != area {
		t.Fatalf("Write returned %+v, want %+v", written, area)
	}

	got := term.Read(area)
	if len(got) != 2 || got[0].Codepoint != 'a' || got[1].Codepoint != 'b' {
		t.Fatalf("Read after Write = %+v", got)
	}
}

func TestWriteInvalidatesWrittenRegion(t *testing.T) {
	d := newTestDevice(t)
	term := &Terminal{d: d}

	term.Write(cells.Area{Lines: 1, Span: 1}, []Cell{letterCell('x')})
	if err := term.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if d.State() != device.Rendered {
		t.Fatalf("State() = %v, want Rendered (Write should have invalidated)", d.State())
	}
}

func TestDefineAndExpressionRoundTrip(t *testing.T) {
	d := newTestDevice(t)
	term := &Terminal{d: d}

	id := term.Define("multi")
	expr, ok := term.Expression(id)
	if !ok || expr != "multi" {
		t.Fatalf("Expression(%d) = %q,%v, want \"multi\",true", id, expr, ok)
	}
}
