package cells

import "errors"

// Errors returned across the engine's public entry points, per the error
// handling design: InvalidInput for malformed/wrong-type arguments,
// InsufficientBuffer for a screen buffer smaller than its declared area,
// OutOfMemory for allocation failure in the replicate temporary or the
// tile cache, UnsupportedInterface for a malformed device capability
// table.
var (
	ErrInvalidInput         = errors.New("cellmatrix: invalid input")
	ErrInsufficientBuffer   = errors.New("cellmatrix: insufficient buffer")
	ErrOutOfMemory          = errors.New("cellmatrix: out of memory")
	ErrUnsupportedInterface = errors.New("cellmatrix: unsupported device interface")
)
