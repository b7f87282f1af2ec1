package device

import (
	"context"
	"image"

	"github.com/bloeys/cellmatrix/controller"
)

// Backend is the platform-specific half of a device embodiment: the part
// that actually pumps an OS/runtime event loop and owns an output
// surface. backend/native and backend/tiles each implement this; Device
// is the platform-independent façade layered on top.
type Backend interface {
	// NextEvent blocks until an event arrives (or ctx is cancelled) and
	// returns a populated Status -- its Receiver must be nil, Device
	// fills that in -- plus any insertion text carried by the event.
	NextEvent(ctx context.Context) (controller.Status, []byte, error)

	// Present copies working, the renderer's composited surface, to the
	// platform's visible output.
	Present(working *image.RGBA) error

	// Synchronize flushes backend-side I/O (buffer swap, socket flush).
	Synchronize() error

	// Transmit sends bytes to whatever the backend's receiver channel
	// represents (e.g. a mirror's controls-channel peer).
	Transmit(data []byte) error

	// ResizeScreen is called when the application requests a matrix
	// resize; the backend reports back the new (lines, span) it settled
	// on (a platform may clamp to window/terminal bounds).
	ResizeScreen(lines, span uint16) (uint16, uint16, error)
}
