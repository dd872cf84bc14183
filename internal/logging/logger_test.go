package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/pathfinder/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" warning "))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(config.LoggingConfig{Level: "warn", Format: "json"}, &buf))

	logger.Info("dropped")
	logger.Warn("kept", "start", "1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "1", rec["start"])
}

func TestOutput_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pathfinder.log")
	logger := slog.New(NewHandler(config.LoggingConfig{}, Output(config.LoggingConfig{File: path, MaxSizeMB: 1})))

	logger.Info("solve finished", "nodes", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "solve finished")
}
