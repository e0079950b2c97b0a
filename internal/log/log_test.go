package log

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theimmortal68/MyFlix-sub006/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("Error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestSetupLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LoggingConfig{
		File:  filepath.Join(dir, "nested", "app.log"),
		Level: "DEBUG",
	}

	logger, err := SetupLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hello")
	assert.FileExists(t, cfg.File)
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger()
	require.NotNil(t, logger)
	logger.Error("discarded")
}
