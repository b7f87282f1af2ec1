// Package tiles implements a pixel-tile device.Backend on top of
// Ebitengine: the window loop, keyboard/text input, and resize
// handling follow the shape of an ebiten.Game, while the composited
// surface device.Device hands to Present is blitted wholesale each
// frame, the same way a CellBuffer is blitted in one Draw call.
package tiles

import (
	"context"
	"image"
	"sync"

	"github.com/bloeys/cellmatrix/controller"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var _ ebiten.Game = &Backend{}

// Backend is an Ebitengine window embodiment of device.Backend.
type Backend struct {
	Title                 string
	CellWidth, CellHeight int

	mu      sync.Mutex
	surface *ebiten.Image

	events   chan eventMsg
	resize   chan resizeReq
	resizeAck chan struct{}

	lines, span uint16

	quit bool
}

type eventMsg struct {
	status controller.Status
	text   []byte
}

type resizeReq struct {
	lines, span uint16
}

// New builds a Backend sized for an initial lines x span cell grid.
func New(title string, cellWidth, cellHeight int, lines, span uint16) *Backend {
	return &Backend{
		Title:      title,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		lines:      lines,
		span:       span,
		events:     make(chan eventMsg, 64),
		resize:     make(chan resizeReq),
		resizeAck:  make(chan struct{}),
	}
}

// Run creates the window and blocks running Ebitengine's game loop. It
// must be called from the main goroutine.
func (b *Backend) Run() error {
	ebiten.SetWindowSize(int(b.span)*b.CellWidth, int(b.lines)*b.CellHeight)
	ebiten.SetWindowTitle(b.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(b)
}

// --- ebiten.Game ---

func (b *Backend) Update() error {

	for _, r := range ebiten.AppendInputChars(nil) {
		b.enqueue(controller.Status{Dispatch: controller.Dispatch(r), Quantity: 1}, []byte(string(r)))
	}

	for key, dispatch := range keyTable {
		if inpututil.IsKeyJustPressed(key) {
			b.enqueue(controller.Status{Dispatch: dispatch, Quantity: 1, Keys: currentMods()}, nil)
		}
	}

	select {
	case req := <-b.resize:
		b.lines, b.span = req.lines, req.span
		ebiten.SetWindowSize(int(b.span)*b.CellWidth, int(b.lines)*b.CellHeight)
		b.resizeAck <- struct{}{}
	default:
	}

	if b.quit {
		return ebiten.Termination
	}
	return nil
}

func (b *Backend) Draw(screen *ebiten.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surface != nil {
		screen.DrawImage(b.surface, nil)
	}
}

func (b *Backend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(b.span) * b.CellWidth, int(b.lines) * b.CellHeight
}

func (b *Backend) enqueue(status controller.Status, text []byte) {
	select {
	case b.events <- eventMsg{status: status, text: text}:
	default:
	}
}

var keyTable = map[ebiten.Key]controller.Dispatch{
	ebiten.KeyEnter:     controller.Dispatch(controller.KeyReturn),
	ebiten.KeyKPEnter:   controller.Dispatch(controller.KeyReturn),
	ebiten.KeyTab:       controller.Dispatch(controller.KeyTab),
	ebiten.KeyEscape:    controller.Dispatch(controller.KeyEscape),
	ebiten.KeyBackspace: controller.Dispatch(controller.KeyDeleteBackwards),
	ebiten.KeyDelete:    controller.Dispatch(controller.KeyDeleteForwards),
	ebiten.KeyHome:      controller.Dispatch(controller.KeyHome),
	ebiten.KeyEnd:       controller.Dispatch(controller.KeyEnd),
	ebiten.KeyPageUp:    controller.Dispatch(controller.KeyPageUp),
	ebiten.KeyPageDown:  controller.Dispatch(controller.KeyPageDown),
	ebiten.KeyArrowUp:    controller.Dispatch(controller.KeyUpArrow),
	ebiten.KeyArrowDown:  controller.Dispatch(controller.KeyDownArrow),
	ebiten.KeyArrowLeft:  controller.Dispatch(controller.KeyLeftArrow),
	ebiten.KeyArrowRight: controller.Dispatch(controller.KeyRightArrow),
	ebiten.KeyInsert:     controller.Dispatch(controller.KeyInsert),
}

func currentMods() controller.Modifiers {
	var m controller.Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		m = m.Set(controller.ModifierShift)
	}
	if ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		m = m.Set(controller.ModifierControl)
	}
	if ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		m = m.Set(controller.ModifierMeta)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		m = m.Set(controller.ModifierSystem)
	}
	return m
}

// --- device.Backend ---

func (b *Backend) NextEvent(ctx context.Context) (controller.Status, []byte, error) {
	select {
	case msg := <-b.events:
		return msg.status, msg.text, nil
	case <-ctx.Done():
		return controller.Status{}, nil, ctx.Err()
	}
}

// Present replaces the displayed surface with working. Ebitengine owns
// its Draw timing, so this only needs to swap the pointer under lock;
// the next Draw call picks it up.
func (b *Backend) Present(working *image.RGBA) error {
	img := ebiten.NewImageFromImage(working)
	b.mu.Lock()
	b.surface = img
	b.mu.Unlock()
	return nil
}

// Synchronize is a no-op: Ebitengine paces and presents frames itself.
func (b *Backend) Synchronize() error { return nil }

// Transmit has no remote peer to address from a local window embodiment.
func (b *Backend) Transmit(data []byte) error { return nil }

func (b *Backend) ResizeScreen(lines, span uint16) (uint16, uint16, error) {
	b.resize <- resizeReq{lines: lines, span: span}
	<-b.resizeAck
	return lines, span, nil
}
