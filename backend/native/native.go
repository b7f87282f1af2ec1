// Package native implements a GL-backed device.Backend: an SDL2 window
// driven by nmage's engine.Game loop, presenting the renderer's
// composited surface on a single textured quad and feeding keyboard,
// text and window events back as controller.Status values.
//
// The shape follows the reference nterm command: engine.Run owns the
// main thread and drives Init/Update/Render/FrameEnd/DeInit, while
// device.Device (on its own goroutine) blocks in Backend.NextEvent and
// Backend.Present. The two sides are bridged with channels rather than
// shared state, since engine.Run and the Device loop run concurrently.
package native

import (
	"context"
	"fmt"
	"image"

	"github.com/bloeys/cellmatrix/controller"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage/assets"
	"github.com/bloeys/nmage/engine"
	"github.com/bloeys/nmage/input"
	"github.com/bloeys/nmage/materials"
	"github.com/bloeys/nmage/meshes"
	"github.com/bloeys/nmage/renderer/rend3dgl"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var _ engine.Game = &Backend{}

// Backend is a GL window embodiment of device.Backend.
type Backend struct {
	Title              string
	CellWidth, CellHeight int

	win  *engine.Window
	rend *rend3dgl.Rend3DGL

	quadMesh *meshes.Mesh
	quadMat  *materials.Material
	surface  uint32 // current GL texture id for the composited surface

	events chan eventMsg

	present  chan *image.RGBA
	presentErr chan error

	resize    chan resizeReq
	resizeErr chan error

	transmit chan []byte

	done chan struct{}
}

type eventMsg struct {
	status controller.Status
	text   []byte
}

type resizeReq struct {
	lines, span uint16
}

// New builds a Backend. Call Run on the main goroutine once; the
// returned Backend is then safe to use from another goroutine as a
// device.Backend.
func New(title string, cellWidth, cellHeight int) *Backend {
	return &Backend{
		Title:      title,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		events:     make(chan eventMsg, 64),
		present:    make(chan *image.RGBA),
		presentErr: make(chan error),
		resize:     make(chan resizeReq),
		resizeErr:  make(chan error),
		transmit:   make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

// Run creates the window and blocks running the engine's game loop. It
// must be called from the main goroutine (GL contexts are thread-bound).
func (b *Backend) Run() error {

	if err := engine.Init(); err != nil {
		return fmt.Errorf("native: engine init: %w", err)
	}

	rend := rend3dgl.NewRend3DGL()
	win, err := engine.CreateOpenGLWindowCentered(b.Title, 1280, 720, engine.WindowFlags_ALLOW_HIGHDPI|engine.WindowFlags_RESIZABLE, rend)
	if err != nil {
		return fmt.Errorf("native: create window: %w", err)
	}
	engine.SetVSync(false)

	b.win = win
	b.rend = rend
	b.win.EventCallbacks = append(b.win.EventCallbacks, b.handleSDLEvent)

	b.quadMesh, err = meshes.NewMesh("cellmatrix-quad", "./res/models/quad.obj", 0)
	if err != nil {
		return fmt.Errorf("native: load quad mesh: %w", err)
	}
	b.quadMat = materials.NewMaterial("cellmatrix-surface", "./res/shaders/grid.glsl")

	engine.Run(b, b.win, nil)
	return nil
}

// handleSDLEvent translates raw SDL events into controller.Status
// values and queues them, mirroring nterm's handleSDLEvent dispatch.
func (b *Backend) handleSDLEvent(e sdl.Event) {

	switch e := e.(type) {

	case *sdl.QuitEvent:
		b.enqueue(controller.Status{Dispatch: controller.EncodeInstruction(controller.InstructionSessionClose), Quantity: 1}, nil)

	case *sdl.TextInputEvent:
		text := []byte(e.GetText())
		if len(text) == 0 {
			return
		}
		r := []rune(string(text))[0]
		b.enqueue(controller.Status{Dispatch: controller.Dispatch(r), Quantity: 1}, text)

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return
		}
		if d, ok := translateKeycode(e.Keysym.Sym); ok {
			b.enqueue(controller.Status{Dispatch: d, Quantity: 1, Keys: translateMods(e.Keysym.Mod)}, nil)
		}

	case *sdl.MouseButtonEvent:
		if e.Type != sdl.MOUSEBUTTONDOWN {
			return
		}
		b.enqueue(controller.Status{
			Dispatch: controller.EncodeScreenCursorKey(int(e.Button)),
			Quantity: 1,
			Top:      int32(e.Y) / int32(b.CellHeight),
			Left:     int32(e.X) / int32(b.CellWidth),
		}, nil)

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			w, h := b.win.SDLWin.GetSize()
			lines := uint16(int(h) / b.CellHeight)
			span := uint16(int(w) / b.CellWidth)
			b.enqueue(controller.Status{Dispatch: controller.DispatchScreenResize, Top: int32(lines), Left: int32(span)}, nil)
		}
	}
}

func (b *Backend) enqueue(status controller.Status, text []byte) {
	select {
	case b.events <- eventMsg{status: status, text: text}:
	default:
		// Drop rather than block the SDL event pump; a full queue means
		// the application side has fallen far behind.
	}
}

// translateKeycode maps the subset of SDL keycodes with a KeyIdentifier
// equivalent onto their Dispatch encoding, following the reference
// table's ordering (editing and navigation keys first).
func translateKeycode(sym sdl.Keycode) (controller.Dispatch, bool) {
	switch sym {
	case sdl.K_RETURN, sdl.K_KP_ENTER:
		return controller.Dispatch(controller.KeyReturn), true
	case sdl.K_TAB:
		return controller.Dispatch(controller.KeyTab), true
	case sdl.K_ESCAPE:
		return controller.Dispatch(controller.KeyEscape), true
	case sdl.K_BACKSPACE:
		return controller.Dispatch(controller.KeyDeleteBackwards), true
	case sdl.K_DELETE:
		return controller.Dispatch(controller.KeyDeleteForwards), true
	case sdl.K_HOME:
		return controller.Dispatch(controller.KeyHome), true
	case sdl.K_END:
		return controller.Dispatch(controller.KeyEnd), true
	case sdl.K_PAGEUP:
		return controller.Dispatch(controller.KeyPageUp), true
	case sdl.K_PAGEDOWN:
		return controller.Dispatch(controller.KeyPageDown), true
	case sdl.K_UP:
		return controller.Dispatch(controller.KeyUpArrow), true
	case sdl.K_DOWN:
		return controller.Dispatch(controller.KeyDownArrow), true
	case sdl.K_LEFT:
		return controller.Dispatch(controller.KeyLeftArrow), true
	case sdl.K_RIGHT:
		return controller.Dispatch(controller.KeyRightArrow), true
	case sdl.K_INSERT:
		return controller.Dispatch(controller.KeyInsert), true
	case sdl.K_PRINTSCREEN:
		return controller.Dispatch(controller.KeyPrintScreen), true
	case sdl.K_PAUSE:
		return controller.Dispatch(controller.KeyPause), true
	}

	if sym >= sdl.K_F1 && sym <= sdl.K_F12 {
		n := int(sym-sdl.K_F1) + 1
		if n <= controller.MaxFunctionKey {
			return controller.EncodeFunctionKey(n), true
		}
	}

	return 0, false
}

func translateMods(mod sdl.Keymod) controller.Modifiers {
	var m controller.Modifiers
	if mod&sdl.KMOD_SHIFT != 0 {
		m = m.Set(controller.ModifierShift)
	}
	if mod&sdl.KMOD_CTRL != 0 {
		m = m.Set(controller.ModifierControl)
	}
	if mod&sdl.KMOD_GUI != 0 {
		m = m.Set(controller.ModifierSystem)
	}
	if mod&sdl.KMOD_ALT != 0 {
		m = m.Set(controller.ModifierMeta)
	}
	return m
}

// --- device.Backend ---

// NextEvent blocks until a queued SDL event, a quit signal, or ctx
// cancellation.
func (b *Backend) NextEvent(ctx context.Context) (controller.Status, []byte, error) {
	select {
	case msg := <-b.events:
		return msg.status, msg.text, nil
	case <-b.done:
		return controller.Status{Dispatch: controller.EncodeInstruction(controller.InstructionSessionClose), Quantity: 1}, nil, nil
	case <-ctx.Done():
		return controller.Status{}, nil, ctx.Err()
	}
}

// Present hands working to the render goroutine and blocks for the GL
// upload and swap to complete; it must not be called from Run's
// goroutine (Update/Render already run there).
func (b *Backend) Present(working *image.RGBA) error {
	select {
	case b.present <- working:
	case <-b.done:
		return nil
	}
	select {
	case err := <-b.presentErr:
		return err
	case <-b.done:
		return nil
	}
}

// Synchronize is folded into Present (GLSwap happens there); nothing
// further to flush.
func (b *Backend) Synchronize() error { return nil }

// Transmit has no meaningful destination for a local GL window (there
// is no remote controls peer to write back to); bell/clipboard style
// requests are dropped.
func (b *Backend) Transmit(data []byte) error { return nil }

// ResizeScreen asks the window loop to resize to the given cell grid
// and reports back the size it settled on.
func (b *Backend) ResizeScreen(lines, span uint16) (uint16, uint16, error) {
	select {
	case b.resize <- resizeReq{lines: lines, span: span}:
	case <-b.done:
		return lines, span, nil
	}
	select {
	case err := <-b.resizeErr:
		return lines, span, err
	case <-b.done:
		return lines, span, nil
	}
}

// --- engine.Game ---

func (b *Backend) Init() {}

func (b *Backend) Update() {
	if input.IsQuitClicked() {
		engine.Quit()
		close(b.done)
	}

	select {
	case req := <-b.resize:
		b.win.SDLWin.SetSize(int32(int(req.span)*b.CellWidth), int32(int(req.lines)*b.CellHeight))
		b.resizeErr <- nil
	default:
	}
}

func (b *Backend) Render() {
	select {
	case img := <-b.present:
		b.presentErr <- b.uploadAndDraw(img)
	default:
	}
}

// uploadAndDraw replaces the current surface texture with img and
// draws a single full-window quad textured with it, matching
// GlyphRend.updateFontAtlasTexture's upload-then-bind pattern.
func (b *Backend) uploadAndDraw(img *image.RGBA) error {

	if b.surface != 0 {
		gl.DeleteTextures(1, &b.surface)
		b.surface = 0
	}

	tex, err := assets.LoadTextureInMemImg(img, nil)
	if err != nil {
		return fmt.Errorf("native: upload surface: %w", err)
	}
	b.surface = tex.TexID

	gl.BindTexture(gl.TEXTURE_2D, b.surface)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	b.quadMat.DiffuseTex = b.surface

	w, h := b.win.SDLWin.GetSize()
	tr := gglm.NewTrMatId().
		Translate(gglm.NewVec3(float32(w)/2, float32(h)/2, 0)).
		Scale(gglm.NewVec3(float32(w), float32(h), 1))
	b.rend.Draw(b.quadMesh, tr, b.quadMat)

	return nil
}

func (b *Backend) FrameEnd() {
	b.win.SDLWin.GLSwap()
}

func (b *Backend) DeInit() {}
