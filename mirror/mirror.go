package mirror

import (
	"io"

	"github.com/bloeys/cellmatrix/cells"
	"github.com/bloeys/cellmatrix/controller"
	"github.com/bloeys/cellmatrix/ring"
	"github.com/bloeys/cellmatrix/screen"
)

const imageFloor int32 = -200000

// textScratchCap bounds the reused insertion-text scratch buffer. A text
// length beyond this (TextLength is a uint16 on the wire, so up to 65535)
// falls back to a one-off allocation; ordinary keystroke/paste text never
// approaches this bound.
const textScratchCap = 4096

// Device is a mirror-protocol device embodiment: it reads controller
// events off controls and writes invalidated cell regions off display.
// Unlike backend/native or backend/tiles it never rasterizes locally --
// the peer on the other end of display owns that -- so it has no tile
// cache or renderer, matching the reference mirror implementation's
// device_manage_terminal, whose cmd_image/cmd_view are left nil.
type Device struct {
	controls io.Reader
	display  io.Writer

	screen *screen.Screen

	status  controller.Status
	text    []byte
	scratch *ring.Buffer[byte]

	invalids []cells.Area
	rendered int

	images *registry
}

// New builds a mirror Device reading events from controls and writing
// display frames to display. s is the shared cell buffer the hosted
// application mutates; RenderImage reads invalidated regions from it.
func New(controls io.Reader, display io.Writer, s *screen.Screen) *Device {
	return &Device{
		controls: controls,
		display:  display,
		screen:   s,
		images:   newRegistry(imageFloor),
		scratch:  ring.NewBuffer[byte](textScratchCap),
	}
}

// TransferEvent blocks reading one ControllerStatus record, its text
// length, and its text off the controls channel, mirroring
// device_transfer_event exactly: any read failure (EOF included) is
// folded into a synthetic session/close event rather than an error, and
// the call always reports success (quantity 1 unless the event itself
// carries a different quantity).
func (d *Device) TransferEvent() error {
	var fixed [controller.FixedSize]byte
	if _, err := io.ReadFull(d.controls, fixed[:]); err != nil {
		d.syntheticClose()
		return nil
	}
	status := controller.StatusFromBytes(fixed)

	textLength, err := readUint16(d.controls)
	if err != nil {
		d.syntheticClose()
		return nil
	}

	if textLength == 0 {
		status.TextLength = 0
		d.status = status
		d.text = nil
		return nil
	}

	text := d.readText(int(textLength))
	if text == nil {
		d.syntheticClose()
		return nil
	}
	status.TextLength = len(text)

	if status.Dispatch == controller.DispatchScreenResize && len(text) >= 4 {
		lines := uint16(text[0]) | uint16(text[1])<<8
		span := uint16(text[2]) | uint16(text[3])<<8
		status.Top, status.Left = int32(lines), int32(span)
	}

	d.status = status
	d.text = text
	return nil
}

// readText reads textLength bytes of insertion text off the controls
// stream. When it fits the reused scratch buffer (the common case for
// keystroke/paste-sized text) it's read directly into that buffer's
// backing array instead of allocating a fresh slice every event.
func (d *Device) readText(textLength int) []byte {
	if textLength <= textScratchCap {
		d.scratch.Start, d.scratch.Len = 0, 0
		buf := d.scratch.Data[:textLength]
		if _, err := io.ReadFull(d.controls, buf); err != nil {
			return nil
		}
		d.scratch.Len = int64(textLength)
		return buf
	}

	text := make([]byte, textLength)
	if _, err := io.ReadFull(d.controls, text); err != nil {
		return nil
	}
	return text
}

func (d *Device) syntheticClose() {
	d.status = controller.Status{
		Dispatch: controller.EncodeInstruction(controller.InstructionSessionClose),
		Quantity: 1,
	}
	d.text = nil
}

// Status returns the current controller status.
func (d *Device) Status() controller.Status { return d.status }

// TransferText returns the borrowed insertion text for the current event.
func (d *Device) TransferText() []byte { return d.text }

// Define mirrors the reference device_define's fast path exactly: a
// single ASCII scalar returns its own codepoint, anything else is
// unsupported over this wire format and returns -1. This is narrower
// than device.Device.Define on purpose -- the mirror display channel has
// no message for registering a multi-codepoint expression with a remote
// peer, so there is nothing to keep consistent on both ends.
func (d *Device) Define(expr string) int32 {
	if len(expr) == 1 && expr[0] < 128 {
		return int32(expr[0])
	}
	return -1
}

// Integrate registers an external resource and returns a stable negative
// id. The reference mirror's device_integrate has an empty body (a
// documented incomplete variant); this implements the contract instead.
func (d *Device) Integrate(ref string, lines, span uint16) int32 {
	key := ref + "\x00" + string([]byte{byte(lines), byte(lines >> 8), byte(span), byte(span >> 8)})
	return d.images.intern(key)
}

// InvalidateCells appends area to the pending-invalidation list.
func (d *Device) InvalidateCells(area cells.Area) {
	d.invalids = append(d.invalids, area)
}

// RenderImage transmits every invalidation recorded since the last
// RenderImage/DispatchImage: a CellArea header (the area clipped to the
// screen) followed by its cells, read fresh from the shared screen
// buffer, in row-major order. Areas of zero volume, before or after
// clipping, are skipped, matching the reference's area.span==0 ||
// area.lines==0 guard.
func (d *Device) RenderImage() error {
	for i := d.rendered; i < len(d.invalids); i++ {
		area := d.invalids[i]
		if area.Lines == 0 || area.Span == 0 {
			continue
		}

		clipped := cells.Intersect(d.screen.Dimensions, area)
		if clipped.Lines == 0 || clipped.Span == 0 {
			continue
		}
		if err := writeArea(d.display, clipped); err != nil {
			return err
		}

		var werr error
		cells.ForEach(d.screen.Buffer, d.screen.Stride(), clipped, func(c *cells.Cell, line, offset int) bool {
			if err := writeCell(d.display, *c); err != nil {
				werr = err
				return false
			}
			return true
		})
		if werr != nil {
			return werr
		}
	}

	d.rendered = len(d.invalids)
	return nil
}

// DispatchImage flushes pending invalidations, then transmits the
// double-zero-area dispatch signal and compacts the invalidation list.
func (d *Device) DispatchImage() error {
	if err := d.RenderImage(); err != nil {
		return err
	}

	zero := cells.Area{}
	if err := writeArea(d.display, zero); err != nil {
		return err
	}
	if err := writeArea(d.display, zero); err != nil {
		return err
	}

	d.invalids = append([]cells.Area(nil), d.invalids[d.rendered:]...)
	d.rendered = 0
	return nil
}

// ReplicateCells flushes pending invalidations (so source reflects
// current cell values) then transmits the destination/source area pair.
func (d *Device) ReplicateCells(destination, source cells.Area) error {
	if err := d.RenderImage(); err != nil {
		return err
	}
	if err := writeArea(d.display, destination); err != nil {
		return err
	}
	return writeArea(d.display, source)
}

// Synchronize is a no-op: the mirror transport has no backend-side I/O
// to flush beyond the writes RenderImage/DispatchImage already issued,
// matching the reference device_synchronize's empty body.
func (d *Device) Synchronize() error { return nil }

// SynchronizeIO transmits the double-area I/O-synchronize signal: a
// zero dispatch area followed by a zero-destination area whose Span
// carries syncSignalSpan.
func (d *Device) SynchronizeIO() error {
	if err := writeArea(d.display, cells.Area{}); err != nil {
		return err
	}
	return writeArea(d.display, cells.Area{Span: syncSignalSpan})
}

// ResizeScreen reallocates the shared cell buffer and drops any
// invalidations, which now reference a buffer that no longer exists.
func (d *Device) ResizeScreen(lines, span uint16) error {
	d.screen.Resize(lines, span)
	d.invalids = nil
	d.rendered = 0
	return nil
}

// Transmit writes bytes back over the controls channel, if it supports
// writes (a duplex socket transport does; a unidirectional stdio pipe
// pairing does not).
func (d *Device) Transmit(data []byte) error {
	w, ok := d.controls.(io.Writer)
	if !ok {
		return errNotWritable
	}
	_, err := w.Write(data)
	return err
}
