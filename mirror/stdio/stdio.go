// Package stdio wires the mirror protocol onto the process's own
// stdin/stdout, mirroring the reference implementation's
// device_manage_terminal, which sets cm_receive_controls to STDIN_FILENO
// and cm_transmit_display to STDOUT_FILENO.
package stdio

import (
	"os"

	"golang.org/x/term"

	"github.com/bloeys/cellmatrix/mirror"
	"github.com/bloeys/cellmatrix/screen"
)

// Terminal pairs a mirror.Device over stdin/stdout with the raw-mode
// state needed to restore the controlling terminal on exit.
type Terminal struct {
	Device  *mirror.Device
	oldState *term.State
	raw     bool
}

// Open puts stdin into raw mode (so individual keystrokes arrive
// unbuffered and unechoed, matching a terminal emulator peer rather
// than a line-editing shell) and returns a mirror.Device driving it.
// If stdin is not a terminal (e.g. piped input in a test), Open skips
// raw-mode and returns a Device anyway.
func Open(s *screen.Screen) (*Terminal, error) {
	fd := int(os.Stdin.Fd())

	t := &Terminal{Device: mirror.New(os.Stdin, os.Stdout, s)}
	if !term.IsTerminal(fd) {
		return t, nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	t.oldState = oldState
	t.raw = true
	return t, nil
}

// Close restores the controlling terminal's original mode, if Open put
// it into raw mode.
func (t *Terminal) Close() error {
	if !t.raw {
		return nil
	}
	return term.Restore(int(os.Stdin.Fd()), t.oldState)
}
