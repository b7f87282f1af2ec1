// Package device implements the device façade: the capability table a
// hosted application drives to transfer events, mutate the cell buffer,
// and render/dispatch frames, layered over a platform-specific Backend.
package device

import (
	"context"
	"fmt"

	"github.com/bloeys/cellmatrix/cells"
	"github.com/bloeys/cellmatrix/controller"
	"github.com/bloeys/cellmatrix/render"
	"github.com/bloeys/cellmatrix/screen"
)

// Expression/image id floors: both are monotonically decreasing
// sequences below these floors, disjoint from each other and from the
// Function/Cursor/Instruction dispatch ranges (which bottom out above
// -0xA000 - a few hundred instructions, i.e. well above -100000).
const (
	expressionFloor int32 = -100000
	imageFloor      int32 = -200000
)

// Device is one connection to a display backend: it owns the screen
// buffer, the renderer (and, through it, the tile cache), the pending
// controller status, and the expression/image registries.
type Device struct {
	Backend Backend

	Screen   *screen.Screen
	Renderer *render.Renderer

	cellWidth, cellHeight int

	status FrameState

	current controller.Status
	text    []byte

	expressions *registry
	images      *registry

	frameTitles []string
	frameCursor int

	pendingSynchronize bool
}

// New builds a Device over an already-constructed Screen and Renderer.
func New(backend Backend, s *screen.Screen, r *render.Renderer, cellWidth, cellHeight int) *Device {
	return &Device{
		Backend:     backend,
		Screen:      s,
		Renderer:    r,
		cellWidth:   cellWidth,
		cellHeight:  cellHeight,
		expressions: newRegistry(expressionFloor),
		images:      newRegistry(imageFloor),
	}
}

// Run delivers one synthetic screen/resize event carrying the device's
// current matrix dimensions before handing control to app: the status
// app reads through Status() on entry holds real dimensions instead of a
// zeroed record -- matching the reference device's behavior of calling
// device_transfer_event once before invoking the hosted application.
// app's first TransferEvent then returns the next backend event.
func (d *Device) Run(ctx context.Context, app func(*Device) error) error {
	d.current = controller.Status{
		Dispatch: controller.DispatchScreenResize,
		Top:      int32(d.Screen.Dimensions.Lines),
		Left:     int32(d.Screen.Dimensions.Span),
	}
	return app(d)
}

// TransferEvent blocks for the next controller event and updates the
// shared status record, returning an opaque quantity code.
func (d *Device) TransferEvent(ctx context.Context) (int32, error) {
	if d.pendingSynchronize {
		d.pendingSynchronize = false
		d.current = controller.Status{Dispatch: controller.DispatchSessionSynchronize, Quantity: 1}
		d.text = nil
		return d.current.Quantity, nil
	}

	status, text, err := d.Backend.NextEvent(ctx)
	if err != nil {
		d.current = controller.Status{Dispatch: controller.EncodeInstruction(controller.InstructionSessionClose), Quantity: 1}
		d.text = nil
		return d.current.Quantity, err
	}

	status.TextLength = len(text)
	d.current = status
	d.text = text
	return d.current.Quantity, nil
}

// Status returns the current controller status record.
func (d *Device) Status() controller.Status {
	return d.current
}

// TransferText returns the borrowed insertion text for the current
// event. It is valid only until the next TransferEvent call.
func (d *Device) TransferText() []byte {
	return d.text
}

// Transmit sends bytes back to the backend via its receiver channel.
func (d *Device) Transmit(data []byte) error {
	return d.Backend.Transmit(data)
}

// Define interns a multi-codepoint expression string and returns a
// negative identifier for it, or the codepoint itself if the string is
// a single Unicode scalar.
func (d *Device) Define(expr string) int32 {
	runes := []rune(expr)
	if len(runes) == 1 {
		return runes[0]
	}
	return d.expressions.intern(expr)
}

// Expression resolves an id returned by Define back to its string.
func (d *Device) Expression(id int32) (string, bool) {
	return d.expressions.lookup(id)
}

// Integrate registers an external resource (e.g. an image) identified
// by ref, sized lines x span cells, and returns a stable negative
// identifier to use as a cell codepoint with a pixel-tile cell
// (Window == cells.ImageTile). Unlike the reference mirror
// implementation's empty-bodied device_integrate, this implements the
// documented contract: spec treats an unimplemented integrate as
// reserved, not absent.
func (d *Device) Integrate(ref string, lines, span uint16) int32 {
	key := fmt.Sprintf("%s;%d;%d", ref, lines, span)
	return d.images.intern(key)
}

// InvalidateCells appends area to the pending-invalidation list and
// marks the device Dirty, regardless of its prior state.
func (d *Device) InvalidateCells(area cells.Area) {
	d.Renderer.Invalidate(area)
	d.status = Dirty
}

// ReplicateCells records a displayed-region copy: it pairs a screen-level
// cell replicate with the matching pixel-surface copy. Per the renderer's
// contract, pending invalidations covering source must be flushed first
// so the pixel copy reflects up-to-date content.
func (d *Device) ReplicateCells(destination, source cells.Area) error {
	if d.Renderer.Pending() {
		if err := d.Renderer.Render(d.Screen); err != nil {
			return err
		}
		d.status = Rendered
	}

	if err := d.Screen.Replicate(destination, source); err != nil {
		return err
	}
	d.Renderer.Replicate(destination, source)
	return nil
}

// RenderImage rasterizes pending invalidations into the working buffer.
// It is a no-op from Idle.
func (d *Device) RenderImage() error {
	if d.status == Idle {
		return nil
	}
	if err := d.Renderer.Render(d.Screen); err != nil {
		return err
	}
	d.status = Rendered
	return nil
}

// DispatchImage presents the working buffer. From Idle it performs no
// presentation but still flushes backend I/O. The device always returns
// to Idle once dispatch completes.
func (d *Device) DispatchImage() error {
	defer func() { d.status = Idle }()

	if d.status == Idle {
		return d.Backend.Synchronize()
	}

	if err := d.Backend.Present(d.Renderer.Working()); err != nil {
		return err
	}
	return d.Backend.Synchronize()
}

// Synchronize flushes backend-side I/O without presenting.
func (d *Device) Synchronize() error {
	return d.Backend.Synchronize()
}

// SynchronizeIO requests that a session/synchronize instruction be
// queued as a future controller event: the next TransferEvent call
// returns it synthetically, without blocking on the backend.
func (d *Device) SynchronizeIO() {
	d.pendingSynchronize = true
}

// ResizeScreen reallocates the cell buffer to the backend-confirmed
// (lines, span) and returns the device to Idle. Pending invalidations
// held by the Renderer are not dropped: they stay queued and are clipped
// against the new dimensions when they are next rendered.
func (d *Device) ResizeScreen(lines, span uint16) error {
	confirmedLines, confirmedSpan, err := d.Backend.ResizeScreen(lines, span)
	if err != nil {
		return err
	}
	d.Screen.Resize(confirmedLines, confirmedSpan)
	d.status = Idle
	return nil
}

// UpdateFrameStatus records the current frame index; last is accepted but
// not stored. No backend chrome is updated; this façade-level bookkeeping
// is always accepted.
func (d *Device) UpdateFrameStatus(current, last int) {
	d.frameCursor = current
	_ = last
}

// UpdateFrameList records the full set of frame titles.
func (d *Device) UpdateFrameList(titles ...string) {
	d.frameTitles = titles
}

// ControlsTranslateCursor translates cursor/pointer status (Top, Left, in
// cell coordinates) against area, returning the local cell position if
// inside, or ok=false if outside.
func (d *Device) ControlsTranslateCursor(area cells.Area) (line, column int, ok bool) {
	l := int(d.current.Top) - int(area.Top)
	c := int(d.current.Left) - int(area.Left)
	if l < 0 || c < 0 || l >= int(area.Lines) || c >= int(area.Span) {
		return 0, 0, false
	}
	return l, c, true
}

// MatrixSnapshot materializes area's cells for capture/replay.
func (d *Device) MatrixSnapshot(area cells.Area) []cells.Cell {
	return d.Screen.Select(area)
}

// ControlsSnapshot serializes the current controller status for
// capture/replay, optionally overriding its dispatch value.
func (d *Device) ControlsSnapshot(dispatchOverride *controller.Dispatch) []byte {
	snap := d.current.Snapshot(dispatchOverride)
	d.current.Receiver = nil
	return snap
}

// IntegrateControls restores a controller status previously produced by
// ControlsSnapshot.
func (d *Device) IntegrateControls(snapshot []byte) error {
	s, err := controller.Integrate(snapshot)
	if err != nil {
		return err
	}
	d.current = s
	return nil
}

// State reports the device's current frame-lifecycle state.
func (d *Device) State() FrameState {
	return d.status
}
