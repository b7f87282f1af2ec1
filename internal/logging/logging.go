// Package logging is a small leveled logger in the teacher's terse
// style: plain fmt-based output gated by a level and by
// consts.Mode_Debug for Debug messages, not a structured logging
// framework (the teacher doesn't reach for one, so neither do we).
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bloeys/cellmatrix/consts"
)

// Level orders verbosity from least to most chatty.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel maps a CLI/config string onto a Level, defaulting to Info
// on an unrecognized name.
func ParseLevel(s string) Level {
	switch s {
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger writes leveled lines to an io.Writer.
type Logger struct {
	out   io.Writer
	level Level
}

// New builds a Logger writing to out at the given level. Debug messages
// are additionally gated by consts.Mode_Debug regardless of level, so a
// release build never pays for debug-line formatting.
func New(out io.Writer, level Level) *Logger {
	return &Logger{out: out, level: level}
}

// Default is the package-level logger cmd/cellmatrixd wires -v/--debug
// into; everything else in the engine that wants ambient logging calls
// through this rather than threading a *Logger everywhere, matching the
// teacher's package-level fmt.Printf calls.
var Default = New(os.Stderr, LevelInfo)

// SetLevel adjusts Default's level, e.g. from a hot-reloaded config.
func SetLevel(l Level) { Default.level = l }

func (l *Logger) log(level Level, format string, args ...any) {
	if level > l.level {
		return
	}
	if level == LevelDebug && !consts.Mode_Debug {
		return
	}
	fmt.Fprintf(l.out, "%s [%s] %s\n", time.Now().Format(time.RFC3339), level, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }

func Error(format string, args ...any) { Default.Error(format, args...) }
func Warn(format string, args ...any)  { Default.Warn(format, args...) }
func Info(format string, args ...any)  { Default.Info(format, args...) }
func Debug(format string, args ...any) { Default.Debug(format, args...) }
