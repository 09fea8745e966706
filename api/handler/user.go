package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/users/api/transport"
	"github.com/fastygo/users/pkg/httpcontext"
	userUC "github.com/fastygo/users/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List users
// @Tags users
// @Router /api/users [get]
func (h *UserHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewUserList(users))
}

// @Summary Get user
// @Tags users
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Get(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewUserResponse(user))
}

// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Router /api/users [post]
func (h *UserHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.CreateUserRequest
	if err := decodeBody(ctx, &req); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	created, err := h.uc.Create(stdCtx, userUC.CreateInput{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.NewUserResponse(created))
}

// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.UpdateUserRequest
	if err := decodeBody(ctx, &req); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	updated, err := h.uc.Update(stdCtx, pathID(ctx), req.Patch())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewUserResponse(updated))
}

// @Summary Delete user
// @Tags users
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	deleted, err := h.uc.Delete(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.DeletedResponse{Deleted: deleted})
}
