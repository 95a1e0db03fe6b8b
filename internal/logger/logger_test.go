package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"nonsense", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestConfigure_LogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "iscript.log")

	require.NoError(t, Configure("warn", logFile, false))
	t.Cleanup(func() { _ = Configure("info", "", false) })

	assert.Equal(t, log.WarnLevel, Logger.GetLevel())

	Warn("tool missing", "tool", "ffmpeg")
	Info("not written")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tool missing")
	assert.NotContains(t, string(data), "not written")
}

func TestConfigure_EnvFallback(t *testing.T) {
	t.Setenv("ISCRIPT_LOG_LEVEL", "debug")
	require.NoError(t, Configure("", "", false))
	t.Cleanup(func() { _ = Configure("info", "", false) })

	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Error("render failed", "media", "clip")
	assert.Contains(t, buf.String(), "render failed")
	assert.Contains(t, buf.String(), "clip")

	styled := NewStyledLogger("Session")
	styled.Info("workspace ready")
	assert.Contains(t, buf.String(), "workspace ready")
}
