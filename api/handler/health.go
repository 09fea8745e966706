package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/users/api/transport"
	"github.com/fastygo/users/internal/infrastructure/monitor"
	"github.com/fastygo/users/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// Check reports store reachability. The probe error is returned verbatim since
// this endpoint is an operational diagnostic.
//
// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status := h.monitor.Check(stdCtx)
	if status.Online {
		h.respondJSON(ctx, http.StatusOK, transport.HealthResponse{Status: "ok"})
		return
	}
	h.respondJSON(ctx, http.StatusInternalServerError, transport.HealthResponse{Status: "error", Detail: status.Detail})
}
