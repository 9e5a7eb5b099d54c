package logger

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "phonebook.log")
	options := &Options{Level: "warn", File: file, Format: "JSON"}

	logger := New(options)
	logger.Info("dropped")
	logger.Warn("kept", "contact", "john")

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal(b, &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "john", line["contact"])
}

func TestNewFallsBack(t *testing.T) {
	options := &Options{Level: "loud", File: os.DevNull, Format: "xml"}
	logger := New(options)

	assert.Empty(t, options.Level)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError), "DevNull discards")

	options = &Options{File: filepath.Join(t.TempDir(), "missing", "dir.log"), Format: "xml"}
	New(options)
	assert.Empty(t, options.File)
	assert.Equal(t, "text", options.Format)
}
