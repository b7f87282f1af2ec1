// Package host is the binding surface a hosted application programs
// against: Area and Cell (immutable value types -- Move/Resize and the
// cell accessors all return copies, never mutate in place) plus
// Terminal, a narrow facade over device.Device that exposes only the
// operations spec.md's control flow grants the application (event
// transfer, cell read/write, invalidate/render/dispatch, resize,
// transmit). device.Device's Backend/Screen/Renderer fields stay
// reachable to the code that wires an embodiment together
// (cmd/cellmatrixd); Terminal hides them from the application.
package host

import (
	"context"

	"github.com/bloeys/cellmatrix/cells"
	"github.com/bloeys/cellmatrix/controller"
	"github.com/bloeys/cellmatrix/device"
)

// Area is the immutable rectangle type hosted code operates on.
type Area = cells.Area

// Cell is the immutable per-position value hosted code reads and writes.
type Cell = cells.Cell

// Terminal is the application-facing handle to a running device.Device.
type Terminal struct {
	d *device.Device
}

// Run starts d's frame loop (delivering the initial synthetic resize
// event) and calls app with a Terminal wrapping d.
func Run(ctx context.Context, d *device.Device, app func(*Terminal) error) error {
	return d.Run(ctx, func(dev *device.Device) error {
		return app(&Terminal{d: dev})
	})
}

// TransferEvent blocks for the next controller event and returns its
// quantity (e.g. repeat count for a held key).
func (t *Terminal) TransferEvent(ctx context.Context) (int32, error) {
	return t.d.TransferEvent(ctx)
}

// Status returns the event delivered by the most recent TransferEvent.
func (t *Terminal) Status() controller.Status { return t.d.Status() }

// Text returns the insertion text carried by the current event.
func (t *Terminal) Text() []byte { return t.d.TransferText() }

// Transmit sends bytes back through the backend's receiver channel.
func (t *Terminal) Transmit(data []byte) error { return t.d.Transmit(data) }

// Define registers expr (a multi-codepoint glyph expression) and
// returns its stable negative dispatch id, or the codepoint itself for
// a single Unicode scalar.
func (t *Terminal) Define(expr string) int32 { return t.d.Define(expr) }

// Expression resolves an id previously returned by Define.
func (t *Terminal) Expression(id int32) (string, bool) { return t.d.Expression(id) }

// Integrate registers an external image resource sized lines x span and
// returns its stable negative id.
func (t *Terminal) Integrate(ref string, lines, span uint16) int32 {
	return t.d.Integrate(ref, lines, span)
}

// Read returns the cells covering area, clipped to the matrix bounds.
func (t *Terminal) Read(area Area) []Cell {
	return t.d.MatrixSnapshot(area)
}

// Write writes source into target row by row, as screen.Screen.Rewrite
// does (target is not clipped to the matrix; writing stops at the end of
// source or of the buffer), marks target dirty and returns it.
func (t *Terminal) Write(target Area, source []Cell) Area {
	written := t.d.Screen.Rewrite(target, source)
	t.d.InvalidateCells(written)
	return written
}

// Invalidate marks area dirty without writing to it (e.g. after a
// Replicate call the destination already reflects).
func (t *Terminal) Invalidate(area Area) { t.d.InvalidateCells(area) }

// Replicate copies the source region onto destination within the shared
// cell buffer, flushing any pending render first.
func (t *Terminal) Replicate(destination, source Area) error {
	return t.d.ReplicateCells(destination, source)
}

// Render composites pending invalidations into the working surface.
func (t *Terminal) Render() error { return t.d.RenderImage() }

// Dispatch presents the working surface and flushes backend I/O.
func (t *Terminal) Dispatch() error { return t.d.DispatchImage() }

// Synchronize flushes backend-side I/O without presenting a frame.
func (t *Terminal) Synchronize() error { return t.d.Synchronize() }

// SynchronizeIO requests a session/synchronize event be queued.
func (t *Terminal) SynchronizeIO() { t.d.SynchronizeIO() }

// Resize requests a matrix resize; the screen takes the size the backend
// settled on. Only an error is returned.
func (t *Terminal) Resize(lines, span uint16) error { return t.d.ResizeScreen(lines, span) }

// UpdateFrameStatus records the active frame index for frame-switch
// instructions; last is not stored.
func (t *Terminal) UpdateFrameStatus(current, last int) { t.d.UpdateFrameStatus(current, last) }

// UpdateFrameList records the open frame titles.
func (t *Terminal) UpdateFrameList(titles ...string) { t.d.UpdateFrameList(titles...) }

// TranslateCursor maps a screen-cursor event's cell position (Status
// Top/Left) onto a (line, column) coordinate relative to area, with
// ok=false when it lies outside area.
func (t *Terminal) TranslateCursor(area Area) (line, column int, ok bool) {
	return t.d.ControlsTranslateCursor(area)
}
