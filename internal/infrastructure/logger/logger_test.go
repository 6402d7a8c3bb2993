package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with JSON format", func(t *testing.T) {
		logger, err := NewLogger(&config.LogConfig{Level: "info", Format: "json"})

		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		logger, err := NewLogger(&config.LogConfig{Level: "debug", Format: "console"})

		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestNew(t *testing.T) {
	t.Run("writes JSON entries with service field", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&config.LogConfig{Level: "info", Format: "json"}, &buf)

		log.Info("model loaded")
		require.NoError(t, log.Sync())

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "model loaded", entry["message"])
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, ServiceName, entry["service"])
		assert.NotEmpty(t, entry["timestamp"])
	})

	t.Run("defaults to info level for invalid level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&config.LogConfig{Level: "invalid", Format: "json"}, &buf)

		log.Debug("hidden")
		log.Info("shown")
		require.NoError(t, log.Sync())

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("error level suppresses warnings", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&config.LogConfig{Level: "error", Format: "json"}, &buf)

		log.Warn("cache unavailable")
		require.NoError(t, log.Sync())

		assert.Empty(t, buf.String())
	})
}
