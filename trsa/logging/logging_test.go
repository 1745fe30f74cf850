package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/TheusHen/trsa/trsa/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger := New(base).With("component", "test")

	ctx := context.Background()
	logger.Debug(ctx, "debug message", "n", 1)
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message", Redacted("private_exponent"))

	out := buf.String()
	assert.Contains(t, out, "debug message")
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "private_exponent="+Placeholder())
}

func TestNewNilUsesDefault(t *testing.T) {
	require.NotNil(t, New(nil))
	Discard().Info(context.Background(), "dropped")
}

func TestFromSettings(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		logger, err := FromSettings(config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole})
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trsa.log")
		logger, err := FromSettings(config.LoggerSettings{
			LogLevel:   config.LogLevelWarning,
			LogType:    config.LogTypeFile,
			FilePath:   path,
			MaxSize:    1,
			MaxBackups: 1,
			MaxAge:     1,
		})
		require.NoError(t, err)

		ctx := context.Background()
		logger.Info(ctx, "below threshold")
		logger.Warn(ctx, "warn message")
		logger.Error(ctx, "error message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		out := string(content)
		assert.NotContains(t, out, "below threshold")
		assert.Contains(t, out, "warn message")
		assert.Contains(t, out, "error message")
		assert.Contains(t, out, `"level":"WARN"`)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := FromSettings(config.LoggerSettings{LogLevel: "loud", LogType: config.LogTypeConsole})
		assert.Error(t, err)
	})
}
