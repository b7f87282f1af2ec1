// Package consts holds compile-time switches shared across the engine.
package consts

// Mode_Debug gates internal invariant checks (see package assert) and the
// verbose render/cache logging in internal/logging.
const Mode_Debug = true
