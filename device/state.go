package device

// FrameState is a single device's position in the per-frame lifecycle:
//
//	IDLE -- invalidate_cells* --> DIRTY -- render_image --> RENDERED -- dispatch_image --> PRESENTED --> IDLE
//
// PRESENTED is transient: DispatchImage always leaves the device back in
// Idle once it returns, so it is never observed between calls.
// InvalidateCells is legal from any state and always lands in Dirty,
// since any invalidation means the working surface no longer reflects
// the cell buffer.
type FrameState int

const (
	Idle FrameState = iota
	Dirty
	Rendered
)

func (s FrameState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dirty:
		return "dirty"
	case Rendered:
		return "rendered"
	default:
		return "unknown"
	}
}
