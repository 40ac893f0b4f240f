package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/teachme-api/internal/config"
)

func TestSetup_ValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
		t.Run(level, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "loud"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestFromContext(t *testing.T) {
	custom := slog.Default().With("component", "test")

	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))

	// Without a stored logger the default is returned.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	custom := slog.Default().With("component", "test")
	fallback := slog.Default().With("component", "fallback")

	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
}
