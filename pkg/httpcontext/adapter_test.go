package httpcontext_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/users/pkg/httpcontext"
	"github.com/fastygo/users/pkg/logger"
)

func newCtx() *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.SetRequestURI("/api/users")
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func TestAttach(t *testing.T) {
	t.Run("keeps incoming request id", func(t *testing.T) {
		ctx := newCtx()
		ctx.Request.Header.Set(httpcontext.HeaderRequestID, "req-42")

		stdCtx, cancel := httpcontext.NewAdapter(0).Attach(ctx)
		defer cancel()

		assert.Equal(t, "req-42", string(ctx.Response.Header.Peek(httpcontext.HeaderRequestID)))

		core, logs := observer.New(zapcore.InfoLevel)
		logger.WithRequestID(stdCtx, zap.New(core)).Info("hello")
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-42", logs.All()[0].ContextMap()["request_id"])
	})

	t.Run("mints a request id", func(t *testing.T) {
		ctx := newCtx()

		_, cancel := httpcontext.NewAdapter(0).Attach(ctx)
		defer cancel()

		id := string(ctx.Response.Header.Peek(httpcontext.HeaderRequestID))
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, httpcontext.RequestID(ctx))
	})

	t.Run("no deadline by default", func(t *testing.T) {
		stdCtx, cancel := httpcontext.NewAdapter(0).Attach(newCtx())
		defer cancel()

		_, ok := stdCtx.Deadline()
		assert.False(t, ok)
	})

	t.Run("optional deadline", func(t *testing.T) {
		stdCtx, cancel := httpcontext.NewAdapter(time.Second).Attach(newCtx())
		defer cancel()

		_, ok := stdCtx.Deadline()
		assert.True(t, ok)
	})
}
