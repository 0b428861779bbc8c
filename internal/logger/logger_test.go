package logger

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewLogger(TestConfig())
		ctx := ContextWithLogger(t.Context(), expected)

		actual := FromContext(ctx)

		require.NotNil(t, actual)
		assert.Equal(t, expected, actual)
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		l := FromContext(t.Context())
		require.NotNil(t, l)
	})

	t.Run("Should return default logger when wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), LoggerCtxKey, "not a logger")
		require.NotNil(t, FromContext(ctx))
	})

	t.Run("Should return default logger when nil logger in context", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), LoggerCtxKey, (Logger)(nil))
		require.NotNil(t, FromContext(ctx))
	})
}

func TestLogLevel(t *testing.T) {
	t.Run("Should convert log levels to charm log levels", func(t *testing.T) {
		for _, tc := range []struct {
			level    LogLevel
			expected int
		}{
			{DebugLevel, -4},
			{InfoLevel, 0},
			{WarnLevel, 4},
			{ErrorLevel, 8},
			{DisabledLevel, 1000},
			{LogLevel("unknown"), 0},
		} {
			assert.Equal(t, tc.expected, int(tc.level.ToCharmlogLevel()), "level %s", tc.level)
		}
	})

	t.Run("Should validate known levels only", func(t *testing.T) {
		assert.True(t, DebugLevel.IsValid())
		assert.True(t, DisabledLevel.IsValid())
		assert.False(t, LogLevel("verbose").IsValid())
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write text logs with fields", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: InfoLevel, Output: &buf})

		l.With("pkg", "example.com/drink").Info("Generated", "file", "kinded_gen.go")

		assert.Contains(t, buf.String(), "Generated")
		assert.Contains(t, buf.String(), "example.com/drink")
		assert.Contains(t, buf.String(), "kinded_gen.go")
	})

	t.Run("Should write JSON logs when enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})

		l.Info("test message")

		assert.Contains(t, buf.String(), `"msg":"test message"`)
	})

	t.Run("Should filter logs below the level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: WarnLevel, Output: &buf})

		l.Debug("debug message")
		l.Info("info message")
		l.Warn("warn message")

		assert.NotContains(t, buf.String(), "debug message")
		assert.NotContains(t, buf.String(), "info message")
		assert.Contains(t, buf.String(), "warn message")
	})

	t.Run("Should discard everything with test config", func(t *testing.T) {
		cfg := TestConfig()
		assert.Equal(t, io.Discard, cfg.Output)
		assert.Equal(t, DisabledLevel, cfg.Level)

		var buf bytes.Buffer
		cfg.Output = &buf
		NewLogger(cfg).Error("error message")
		assert.Empty(t, buf.String())
	})
}
