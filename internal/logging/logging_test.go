package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cocteler.log")

	logger, err := New(path, "debug")
	require.NoError(t, err)
	logger.Named("kv").Debug("persisted", zap.String("key", "@cocktail_app_favorites"))
	Sync(logger)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, "persisted", entry["msg"])
	require.Equal(t, "kv", entry["logger"])
	require.Equal(t, "@cocktail_app_favorites", entry["key"])
	require.NotEmpty(t, entry["ts"])
}

func TestNewFiltersBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cocteler.log")

	logger, err := New(path, "warn")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	Sync(logger)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hidden")
	require.Contains(t, string(raw), "shown")
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("", "info")
	require.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.ErrorContains(t, err, "parse log level")
}
