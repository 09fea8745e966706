package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fastygo/users/pkg/logger"
)

func TestNewWithSink(t *testing.T) {
	t.Run("json with request id", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := logger.NewWithSink(logger.Config{Level: "debug", Encoding: "json"}, zapcore.AddSync(&buf))
		require.NoError(t, err)

		ctx := logger.ContextWithRequestID(context.Background(), "abc")
		logger.WithRequestID(ctx, log).Debug("user created")

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "user created", line["msg"])
		assert.Equal(t, "abc", line["request_id"])
		assert.Contains(t, line, "timestamp")
		assert.NotContains(t, line, "env")
	})

	t.Run("environment field", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := logger.NewWithSink(logger.Config{Level: "info", Environment: "staging"}, zapcore.AddSync(&buf))
		require.NoError(t, err)

		log.Info("server started")

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "staging", line["env"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := logger.NewWithSink(logger.Config{Level: "loud"}, zapcore.AddSync(&buf))
		require.NoError(t, err)

		log.Debug("hidden")
		assert.Zero(t, buf.Len())
		log.Info("shown")
		assert.NotZero(t, buf.Len())
	})
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", logger.RequestID(context.Background()))
	assert.Equal(t, "x", logger.RequestID(logger.ContextWithRequestID(context.Background(), "x")))
}
