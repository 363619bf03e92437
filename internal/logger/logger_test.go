package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		"debug":   {in: "debug", want: slog.LevelDebug},
		"upper":   {in: "WARN", want: slog.LevelWarn},
		"warning": {in: "warning", want: slog.LevelWarn},
		"error":   {in: "error", want: slog.LevelError},
		"empty":   {in: "", want: slog.LevelInfo},
		"unknown": {in: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			lvl, err := ParseLevel(test.in)
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, test.want, lvl)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "warn", "json")
	require.NoError(t, err)

	log.Info("dropped")
	log.With("component", "joiner").Warn("skipping interface", "interface", "eth0")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "skipping interface", rec["msg"])
	assert.Equal(t, "joiner", rec["component"])
	assert.Equal(t, "eth0", rec["interface"])
}

func TestNew_Terminal(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "info", "terminal")
	require.NoError(t, err)

	log.Info("listening", "addr", ":8161")
	assert.Contains(t, buf.String(), "listening")
	assert.Contains(t, buf.String(), "addr=:8161")
}

func TestNew_Errors(t *testing.T) {
	_, err := newLogger(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)

	_, err = newLogger(&bytes.Buffer{}, "loud", "json")
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	assert.False(t, isTerminal(f), "regular file")
	assert.False(t, isTerminal(&bytes.Buffer{}), "not a file")
}

func TestNew_TerminalToFileHasNoColor(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	log, err := newLogger(f, "info", "terminal")
	require.NoError(t, err)
	log.Info("listening")

	out, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "\x1b[")
}
