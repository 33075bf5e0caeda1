package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrill/typedrill/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"garbage", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Info("generated challenges", slog.Int("count", 42))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "generated challenges", record["msg"])
	assert.Equal(t, float64(42), record["count"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.With(slog.String("repo", "a/b")).Info("scan finished")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "a/b", record["repo"])
}

func TestTerminalHandler_Format(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "DEBUG")

	logger.Info("generated challenges", slog.String("repo", "github_com_a_b"), slog.Int("count", 42))

	line := buf.String()
	assert.Contains(t, line, " INF ")
	assert.Contains(t, line, "generated challenges")
	assert.Contains(t, line, "repo=github_com_a_b")
	assert.Contains(t, line, "count=42")
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.NotContains(t, line, "\033[")
}

func TestTerminalHandler_LevelLabels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "DEBUG")

	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "DBG")
	assert.Contains(t, lines[1], "INF")
	assert.Contains(t, lines[2], "WRN")
	assert.Contains(t, lines[3], "ERR")
}

func TestTerminalHandler_QuotesValuesWithSpaces(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.Info("msg", slog.String("error", "open file: not found"))
	assert.Contains(t, buf.String(), `error="open file: not found"`)
}

func TestTerminalHandler_Groups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.Slog().WithGroup("cache").Info("msg", slog.Int("entries", 3))
	assert.Contains(t, buf.String(), "cache.entries=3")
}
