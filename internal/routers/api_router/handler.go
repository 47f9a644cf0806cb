// Package api_router provides the HTTP API route handlers.
package api_router

import (
	"context"

	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
	"github.com/notehub/note-hub-service/internal/middleware"
)

// Handler is the base handler embedding the app container. Every API
// handler embeds it for dependency access.
type Handler struct {
	App *app.App
}

// NewHandler creates the base handler.
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError logs a handler failure with the request trace id.
func (h *Handler) logError(ctx context.Context, scope string, err error) {
	h.App.Logger().Error(scope,
		zap.String("trace_id", middleware.GetTraceID(ctx)),
		zap.Error(err),
	)
}
