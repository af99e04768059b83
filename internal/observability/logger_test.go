package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/healthedu-backend/config"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("json logger", func(t *testing.T) {
		logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "info", LogFormat: "json"})
		require.NoError(t, err)
		defer logger.Sync()

		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("console logger", func(t *testing.T) {
		logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "DEBUG", LogFormat: "console"})
		require.NoError(t, err)
		defer logger.Sync()

		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid log level", func(t *testing.T) {
		logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "loud", LogFormat: "json"})
		assert.Error(t, err)
		assert.Nil(t, logger)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
