package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "vh.log")
	logger, closer, err := New(Config{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	logger.Debug("hook received", "hook", "Stop")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record))
	assert.Equal(t, "hook received", record["msg"])
	assert.Equal(t, "Stop", record["hook"])
}

func TestNewAppendsAndFiltersLevel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vh.log")
	for i := 0; i < 2; i++ {
		logger, closer, err := New(Config{Level: "warn", File: path})
		require.NoError(t, err)
		logger.Info("dropped")
		logger.Warn("kept")
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "msg=kept"))
	assert.NotContains(t, string(data), "dropped")
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, _, err := New(Config{Level: "loud"})
	assert.ErrorContains(t, err, "unknown log level")

	_, _, err = New(Config{Format: "xml"})
	assert.ErrorContains(t, err, "unknown log format")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}
