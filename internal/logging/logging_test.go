package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltersLowerPriorityMessages(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Info("should not appear")
	l.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("Info message leaked through at LevelWarn: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Fatalf("Warn message missing: %q", out)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if ParseLevel("bogus") != LevelInfo {
		t.Fatalf("ParseLevel(bogus) = %v, want LevelInfo", ParseLevel("bogus"))
	}
	if ParseLevel("debug") != LevelDebug {
		t.Fatalf("ParseLevel(debug) = %v, want LevelDebug", ParseLevel("debug"))
	}
}

func TestDebugMessageFormatsArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug)
	l.Debug("slot %d of %d", 3, 8)
	// consts.Mode_Debug is true in this build, so the line is not compiled out.
	if !strings.Contains(buf.String(), "slot 3 of 8") {
		t.Fatalf("Debug message not formatted: %q", buf.String())
	}
}
