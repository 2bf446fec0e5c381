package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Level: "warn", Output: &buf})
	log.Info("hidden")
	log.Warn("shown", "file", "a.xlsx")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "file=a.xlsx")

	log.SetLevel("debug")
	log.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNew_JSONWithAttributes(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Format: "json", Output: &buf}).With("run_id", "abc")
	log.Error("failed", "stage", "converted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "failed", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "converted", entry["stage"])
	assert.Equal(t, "ERROR", entry["level"])
}

func TestNewLogger_Level(t *testing.T) {
	log := NewLogger("error")
	assert.Equal(t, slog.LevelError, log.level.Level())

	log.SetLevel("bogus")
	assert.Equal(t, slog.LevelInfo, log.level.Level())
}
