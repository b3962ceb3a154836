package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "default log level (info)", logLevel: ""},
		{name: "debug log level", logLevel: "debug"},
		{name: "invalid log level defaults to info", logLevel: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.logLevel != "" {
				t.Setenv("LOG_LEVEL", tt.logLevel)
			}

			assert.NotNil(t, NewLogger())
			assert.NotNil(t, NewTextLogger())
		})
	}
}

func TestRunIDPropagation(t *testing.T) {
	t.Run("run ID round-trips through context", func(t *testing.T) {
		ctx := WithRunIDContext(context.Background(), "run-123")
		assert.Equal(t, "run-123", RunIDFromContext(ctx))
	})

	t.Run("missing run ID yields empty string", func(t *testing.T) {
		assert.Equal(t, "", RunIDFromContext(context.Background()))
	})

	t.Run("WithRunID without run ID returns the same logger", func(t *testing.T) {
		logger := slog.Default()
		assert.Same(t, logger, WithRunID(context.Background(), logger))
	})

	t.Run("WithRunID with run ID returns a derived logger", func(t *testing.T) {
		ctx := WithRunIDContext(context.Background(), "run-456")
		logger := slog.Default()
		assert.NotSame(t, logger, WithRunID(ctx, logger))
	})
}

func TestLoggerContext(t *testing.T) {
	t.Run("logger round-trips through context", func(t *testing.T) {
		logger := NewTextLogger()
		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("missing logger falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})
}
