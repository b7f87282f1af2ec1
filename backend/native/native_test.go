package native

import (
	"testing"

	"github.com/bloeys/cellmatrix/controller"
	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslateKeycodeArrowsAndEditing(t *testing.T) {
	cases := map[sdl.Keycode]controller.KeyIdentifier{
		sdl.K_RETURN:    controller.KeyReturn,
		sdl.K_TAB:       controller.KeyTab,
		sdl.K_ESCAPE:    controller.KeyEscape,
		sdl.K_BACKSPACE: controller.KeyDeleteBackwards,
		sdl.K_UP:        controller.KeyUpArrow,
		sdl.K_LEFT:      controller.KeyLeftArrow,
	}

	for sym, want := range cases {
		got, ok := translateKeycode(sym)
		if !ok {
			t.Fatalf("translateKeycode(%v): not ok", sym)
		}
		if got != controller.Dispatch(want) {
			t.Fatalf("translateKeycode(%v) = %v, want %v", sym, got, want)
		}
	}
}

func TestTranslateKeycodeFunctionKeys(t *testing.T) {
	got, ok := translateKeycode(sdl.K_F1)
	if !ok {
		t.Fatalf("F1: not ok")
	}
	if got != controller.EncodeFunctionKey(1) {
		t.Fatalf("F1 = %v, want %v", got, controller.EncodeFunctionKey(1))
	}

	got, ok = translateKeycode(sdl.K_F12)
	if !ok || got != controller.EncodeFunctionKey(12) {
		t.Fatalf("F12 = %v,%v, want %v,true", got, ok, controller.EncodeFunctionKey(12))
	}
}

func TestTranslateKeycodeUnknownIsRejected(t *testing.T) {
	if _, ok := translateKeycode(sdl.K_a); ok {
		t.Fatalf("plain letter key should not translate (handled via TextInputEvent instead)")
	}
}

func TestTranslateMods(t *testing.T) {
	m := translateMods(sdl.KMOD_LSHIFT | sdl.KMOD_LCTRL)
	if !m.Has(controller.ModifierShift) || !m.Has(controller.ModifierControl) {
		t.Fatalf("translateMods missing expected bits: %v", m.Names())
	}
	if m.Has(controller.ModifierMeta) {
		t.Fatalf("translateMods set unexpected Meta bit")
	}
}
