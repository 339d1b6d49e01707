package log

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
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestSetupLoggerSplitsStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closers, err := setupLogger(Config{Level: "info", Format: "text"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Debug("hidden")
	logger.Info("progress", "stage", "extract")
	logger.Error("failed", "stage", "emit")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "stage=extract")
	assert.NotContains(t, stdout.String(), "failed")
	assert.Contains(t, stderr.String(), "stage=emit")
	assert.NotContains(t, stderr.String(), "progress")
}

func TestSetupLoggerJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, _, err := setupLogger(Config{Level: "info", Format: "json"}, &stdout, &stderr)
	require.NoError(t, err)

	logger.Info("Extracted constants", "count", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rec))
	assert.Equal(t, "Extracted constants", rec["msg"])
	assert.EqualValues(t, 3, rec["count"])
}

func TestUseJSONAuto(t *testing.T) {
	// A buffer is never a terminal.
	assert.True(t, useJSON("auto", &bytes.Buffer{}))
	assert.False(t, useJSON("text", &bytes.Buffer{}))
	assert.True(t, useJSON("json", &bytes.Buffer{}))
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fourccgen.log")
	var stdout, stderr bytes.Buffer
	logger, closers, err := setupLogger(Config{Level: "debug", File: path}, &stdout, &stderr)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("written to file")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "written to file")
}
