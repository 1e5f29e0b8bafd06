package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestLogger_WritesTimestampLevelMessage(t *testing.T) {
	var buf bytes.Buffer

	l := NewLoggerTo(&buf, "info")
	l.Info("Converting bde.json", "rows", 3)

	out := buf.String()
	assert.Contains(t, out, "time=")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="Converting bde.json"`)
	assert.Contains(t, out, "rows=3")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := NewLoggerTo(&buf, "warn")
	l.Info("hidden")
	l.Debug("hidden too")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	l.SetLevel("debug")
	l.With("component", "crawler").Debug("now visible")
	assert.Contains(t, buf.String(), "component=crawler")
}
