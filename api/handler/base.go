package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/users/api/transport"
	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/pkg/httpcontext"
	appLogger "github.com/fastygo/users/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// respondError maps err to its status. The wrapped cause is only exposed for
// client errors; server-side causes are logged instead.
func (h baseHandler) respondError(stdCtx context.Context, ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)

	detail := ""
	switch {
	case status >= http.StatusInternalServerError:
		appLogger.WithRequestID(stdCtx, h.logger).Error("request failed",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	default:
		detail = transport.ValidationDetail(err)
		if detail == "" {
			detail = causeOf(err)
		}
	}

	h.respondJSON(ctx, status, transport.NewError(string(code), domain.MessageOf(err), detail))
}

func mapError(err error) (int, domain.ErrorCode) {
	code := domain.CodeOf(err)
	switch code {
	case domain.ErrCodeInvalid, domain.ErrCodeConflict:
		return http.StatusBadRequest, code
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, code
	case domain.ErrCodeUnavailable:
		return http.StatusInternalServerError, code
	default:
		return http.StatusInternalServerError, domain.ErrCodeInternal
	}
}

func causeOf(err error) string {
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Err != nil {
		return dErr.Err.Error()
	}
	return ""
}

// decodeBody reads a JSON body into dst. An empty body decodes as {}.
func decodeBody(ctx *fasthttp.RequestCtx, dst interface{}) error {
	body := ctx.PostBody()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, err)
	}
	return nil
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}
