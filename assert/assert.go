// Package assert holds debug-gated invariant checks for the cell-matrix
// engine. These never run in place of error handling at a public entry
// point; they exist to catch a violated internal invariant (a corrupt
// bucket, a screen buffer smaller than its declared area) during
// development.
package assert

import (
	"fmt"

	"github.com/bloeys/cellmatrix/consts"
)

// T panics with msg (formatted with args) if check is false and the
// engine was built with consts.Mode_Debug enabled.
func T(check bool, msg string, args ...any) {
	if consts.Mode_Debug && !check {
		// Sprintf is done inside the assert because putting it as the argument to 'msg' blocks
		// the function from getting fully optimized out on a release build (and slower in general)
		panic("Assert failed: " + fmt.Sprintf(msg, args...))
	}
}

// Never marks a branch that the caller believes is unreachable.
func Never(msg string, args ...any) {
	T(false, msg, args...)
}
