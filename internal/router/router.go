package router

import (
	"fmt"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/users/api/handler"
)

type Handlers struct {
	User   *apiHandler.UserHandler
	Health *apiHandler.HealthHandler
}

// Options holds optional routing features.
type Options struct {
	// StaticDir, when set, is served under /static/.
	StaticDir string
	Logger    *zap.Logger
}

func New(handlers Handlers, opts Options) *router.Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := router.New()

	r.GET("/health", handlers.Health.Check)

	api := r.Group("/api")
	api.GET("/users", handlers.User.ListUsers)
	api.POST("/users", handlers.User.CreateUser)
	api.GET("/users/{id}", handlers.User.GetUser)
	api.PUT("/users/{id}", handlers.User.UpdateUser)
	api.DELETE("/users/{id}", handlers.User.DeleteUser)

	if opts.StaticDir != "" {
		r.ServeFiles("/static/{filepath:*}", opts.StaticDir)
	}

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		writeError(ctx, http.StatusNotFound, "Not found")
	}
	r.MethodNotAllowed = func(ctx *fasthttp.RequestCtx) {
		writeError(ctx, http.StatusMethodNotAllowed, "Method not allowed")
	}
	r.PanicHandler = func(ctx *fasthttp.RequestCtx, p interface{}) {
		logger.Error("handler panic", zap.ByteString("path", ctx.Path()), zap.String("panic", fmt.Sprint(p)))
		writeError(ctx, http.StatusInternalServerError, "internal error")
	}

	return r
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBodyString(fmt.Sprintf(`{"error":%q}`, message))
}
