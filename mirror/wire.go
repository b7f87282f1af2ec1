// Package mirror implements the mirror device wire protocol: a display
// is driven entirely over two byte streams -- a controls channel the
// mirror reads ControllerStatus events from, and a display channel it
// writes invalidated cell regions to -- so a remote process can present
// the matrix without sharing memory with the hosted application.
//
// Framing follows the reference mirror device implementation exactly:
// a ControllerStatus event is a fixed-size record, a uint16 text
// length, and that many bytes of UTF-8; a display frame is a CellArea
// header followed by lines*span packed Cells, except that a pair of
// zero-volume areas signals dispatch, and a zero-volume destination
// paired with a source area whose Span carries syncSignalSpan requests
// I/O synchronization.
package mirror

import (
	"encoding/binary"
	"io"

	"github.com/bloeys/cellmatrix/cells"
)

// syncSignalSpan is the sentinel carried in the source area's Span field
// of an I/O-synchronize signal pair, distinguishing it from an ordinary
// dispatch signal (which uses an all-zero second area).
const syncSignalSpan = 0xFFFF

func writeArea(w io.Writer, a cells.Area) error {
	b := a.Bytes()
	_, err := w.Write(b[:])
	return err
}

func readArea(r io.Reader) (cells.Area, error) {
	var b [cells.AreaSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return cells.Area{}, err
	}
	return cells.AreaFromBytes(b[:])
}

func writeCell(w io.Writer, c cells.Cell) error {
	b := c.Bytes()
	_, err := w.Write(b[:])
	return err
}

func readCell(r io.Reader) (cells.Cell, error) {
	var b [cells.Size]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return cells.Cell{}, err
	}
	return cells.CellFromBytes(b), nil
}

func writeUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}
