package router_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/users/api/handler"
	"github.com/fastygo/users/internal/infrastructure/monitor"
	"github.com/fastygo/users/internal/middleware"
	"github.com/fastygo/users/internal/router"
	"github.com/fastygo/users/internal/testsupport/memory"
	userUC "github.com/fastygo/users/usecase/user"
)

func newRouter(opts router.Options) fasthttp.RequestHandler {
	repo := memory.NewUserRepository()
	r := router.New(router.Handlers{
		User:   apiHandler.NewUserHandler(userUC.New(repo, nil), nil, nil),
		Health: apiHandler.NewHealthHandler(monitor.New(repo, time.Second, nil), nil, nil),
	}, opts)
	return r.Handler
}

func serve(h fasthttp.RequestHandler, method, uri string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h(ctx)
	return ctx
}

func TestRoutes(t *testing.T) {
	h := newRouter(router.Options{})

	t.Run("unknown path", func(t *testing.T) {
		ctx := serve(h, http.MethodGet, "/api/nothing")
		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"error":"Not found"}`, string(ctx.Response.Body()))
	})

	t.Run("wrong method", func(t *testing.T) {
		ctx := serve(h, http.MethodPatch, "/api/users/abc")
		assert.Equal(t, http.StatusMethodNotAllowed, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"error":"Method not allowed"}`, string(ctx.Response.Body()))
	})

	t.Run("health", func(t *testing.T) {
		ctx := serve(h, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	})

	t.Run("static disabled", func(t *testing.T) {
		ctx := serve(h, http.MethodGet, "/static/script.js")
		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	})
}

func TestFallbacksCarryRequestID(t *testing.T) {
	h := middleware.Chain(newRouter(router.Options{}), middleware.AccessLog(nil))

	for _, tc := range []struct {
		method, uri string
		status      int
	}{
		{http.MethodGet, "/api/nope", http.StatusNotFound},
		{http.MethodPatch, "/api/users/abc", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/users", http.StatusOK},
	} {
		ctx := serve(h, tc.method, tc.uri)
		assert.Equal(t, tc.status, ctx.Response.StatusCode(), tc.uri)
		assert.NotEmpty(t, ctx.Response.Header.Peek("X-Request-ID"), tc.uri)
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.js"), []byte("console.log('users')"), 0o644))

	h := newRouter(router.Options{StaticDir: dir})

	ctx := serve(h, http.MethodGet, "/static/script.js")
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "console.log('users')", string(ctx.Response.Body()))
}
