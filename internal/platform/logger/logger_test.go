package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/config"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level falls back to info", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Same(t, logger, slog.Default())
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		_, logger, cleanup := SetupTestLogger(t, nil)
		defer cleanup()

		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("FromContextOrDefault prefers provided default", func(t *testing.T) {
		_, def, cleanup := SetupTestLogger(t, nil)
		defer cleanup()

		got := FromContextOrDefault(context.Background(), def)
		assert.Same(t, def, got)
	})
}

func TestLogCapture(t *testing.T) {
	logBuf, logger, cleanup := SetupTestLogger(t, nil)
	defer cleanup()

	logger.Info("assignment created",
		"component", "assignment_service",
		"count", 3)

	AssertLogContains(t, logBuf, "assignment created")

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "assignment_service", entries[0]["component"])
	assert.Equal(t, float64(3), entries[0]["count"])
}
