package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/users/pkg/logger"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// Adapter converts fasthttp.RequestCtx into a stdlib context carrying the request id.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs an Adapter. A zero timeout leaves store calls bounded
// only by the client's own connection timeouts.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout < 0 {
		timeout = 0
	}
	return &Adapter{timeout: timeout}
}

// Attach derives a context for ctx and echoes the request id on the response.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	var (
		stdCtx context.Context
		cancel context.CancelFunc
	)
	if a != nil && a.timeout > 0 {
		stdCtx, cancel = context.WithTimeout(context.Background(), a.timeout)
	} else {
		stdCtx, cancel = context.WithCancel(context.Background())
	}

	reqID := RequestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set(HeaderRequestID, reqID)

	return stdCtx, cancel
}

// RequestID returns the incoming request id, minting and remembering one when absent.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if id, ok := ctx.UserValue(HeaderRequestID).(string); ok && id != "" {
		return id
	}
	id := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID)))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.SetUserValue(HeaderRequestID, id)
	return id
}
