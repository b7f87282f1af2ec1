package controller

import "encoding/binary"

// Receiver is a one-shot channel from the hosted application back to the
// device backend, used by Device.Transmit. It is cleared whenever a
// Status is serialized with Snapshot.
type Receiver func(data []byte)

// Status is the single controller-status record shared between a device
// backend and the hosted application. It is mutated only by the backend,
// between calls to the device's TransferEvent, and read by the
// application afterwards -- there is no concurrent access to a given
// Status from both sides.
type Status struct {
	Dispatch Dispatch
	Quantity int32

	Keys       Modifiers
	TextLength int

	Top, Left int32

	Receiver Receiver
}

// FixedSize is the byte length of the fixed portion of Status (everything
// but the receiver callback, which has no wire representation) as used by
// the mirror wire protocol framing.
const FixedSize = 4 /*dispatch*/ + 4 /*quantity*/ + 4 /*keys*/ + 8 /*text length*/ + 4 /*top*/ + 4 /*left*/

// Bytes packs the fixed portion of Status for the mirror wire protocol.
// TextLength is carried as a uint64 here; the mirror framing itself
// additionally sends a uint16 text length immediately afterward (see
// package mirror) to bound the insertion-text payload that follows.
func (s Status) Bytes() [FixedSize]byte {
	var b [FixedSize]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(s.Dispatch))
	binary.LittleEndian.PutUint32(b[4:8], uint32(s.Quantity))
	binary.LittleEndian.PutUint32(b[8:12], uint32(s.Keys))
	binary.LittleEndian.PutUint64(b[12:20], uint64(s.TextLength))
	binary.LittleEndian.PutUint32(b[20:24], uint32(s.Top))
	binary.LittleEndian.PutUint32(b[24:28], uint32(s.Left))
	return b
}

// StatusFromBytes decodes the fixed portion of a Status. Receiver is
// always nil after decoding: it never round-trips through the wire
// format (see Snapshot).
func StatusFromBytes(b [FixedSize]byte) Status {
	return Status{
		Dispatch:   Dispatch(int32(binary.LittleEndian.Uint32(b[0:4]))),
		Quantity:   int32(binary.LittleEndian.Uint32(b[4:8])),
		Keys:       Modifiers(binary.LittleEndian.Uint32(b[8:12])),
		TextLength: int(binary.LittleEndian.Uint64(b[12:20])),
		Top:        int32(binary.LittleEndian.Uint32(b[20:24])),
		Left:       int32(binary.LittleEndian.Uint32(b[24:28])),
	}
}

// Snapshot serializes s for capture/replay (controls_snapshot in the
// reference design). dispatchOverride, when non-nil, replaces Dispatch in
// the serialized image -- used by callers that want to re-dispatch a
// captured status as a different event (e.g. replaying it as
// screen/resize). The Receiver field is never serialized.
func (s Status) Snapshot(dispatchOverride *Dispatch) []byte {
	snap := s
	snap.Receiver = nil
	if dispatchOverride != nil {
		snap.Dispatch = *dispatchOverride
	}

	fixed := snap.Bytes()
	return fixed[:]
}

// Integrate decodes a snapshot produced by Snapshot. The returned Status
// always has a nil Receiver.
func Integrate(snapshot []byte) (Status, error) {
	if len(snapshot) != FixedSize {
		return Status{}, errInvalidSnapshot
	}

	var fixed [FixedSize]byte
	copy(fixed[:], snapshot)
	return StatusFromBytes(fixed), nil
}
