package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetupLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closers, err := setupLogger(&buf, "trace", "text", "")
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Log(t.Context(), LevelTrace, "lookup", "char", "q")
	assert.Contains(t, buf.String(), "level=TRACE")
	assert.Contains(t, buf.String(), "char=q")
}

func TestSetupLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := setupLogger(&buf, "info", "json", "")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "layout", "ru")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"layout":"ru"`)
}

func TestSetupLoggerBadFormat(t *testing.T) {
	_, _, err := setupLogger(&bytes.Buffer{}, "info", "xml", "")
	assert.Error(t, err)
}

func TestSetupLoggerFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "keyswap.log")
	logger, closers, err := setupLogger(&console, "debug", "text", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("detail")
	logger.Warn("careful")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	assert.NotContains(t, console.String(), "detail")
	assert.Contains(t, console.String(), "careful")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "detail")
	assert.Contains(t, string(data), "careful")
}

func TestWireLogger(t *testing.T) {
	var buf bytes.Buffer
	w := NewWire(&buf)
	w.Log(true, []byte("convert/ru ghbdtn\x00"))
	w.Log(false, []byte{0xff, 0x01})
	w.Log(false, nil)

	out := buf.String()
	assert.Contains(t, out, `C->S 18 bytes, text: "convert/ru ghbdtn\x00"`)
	assert.Contains(t, out, "S->C 2 bytes, hex: ff 01")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))

	NewWire(nil).Log(true, []byte("ignored"))
}
