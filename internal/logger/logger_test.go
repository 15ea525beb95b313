package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"none", LevelNone},
		{" Error ", LevelError},
		{"invalid", LevelInfo}, // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "NONE", LevelNone.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelInfo, &buf, "opord")
	l.now = func() time.Time { return time.Date(2020, 12, 18, 6, 0, 0, 0, time.UTC) }

	l.Debug("hidden")
	l.Info("sum %d", 71)
	l.WithPrefix("math.txt").Warn("slow")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2020-12-18 06:00:00.000 [INFO] [opord] sum 71", lines[0])
	assert.Equal(t, "2020-12-18 06:00:00.000 [WARN] [opord:math.txt] slow", lines[1])
}

func TestLevelThreshold(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelDebug, []string{"[DEBUG] d", "[INFO] i", "[WARN] w"}},
		{LevelInfo, []string{"[INFO] i", "[WARN] w"}},
		{LevelWarn, []string{"[WARN] w"}},
		{LevelError, nil},
		{LevelNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWriter(tt.level, &buf, "")
			l.Debug("d")
			l.Info("i")
			l.Warn("w")

			if tt.want == nil {
				assert.Empty(t, buf.String())
				return
			}
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, len(tt.want))
			for i, want := range tt.want {
				assert.True(t, strings.HasSuffix(lines[i], want), lines[i])
			}
		})
	}
}

func TestFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "opord.log")

	l, err := New(LevelInfo, logPath, "test")
	require.NoError(t, err)
	l.Info("test message")
	l.Debug("should not appear")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO] [test] test message")
	assert.NotContains(t, string(content), "should not appear")
}

func TestDiscard(t *testing.T) {
	l, err := New(LevelNone, "", "")
	require.NoError(t, err)
	l.Warn("nothing")
	assert.NoError(t, l.Close())
	assert.NoError(t, Discard().WithPrefix("x").Close())
}
