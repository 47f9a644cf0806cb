package websocket_router

import (
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
	pkgapp "github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
)

// WSHandler is the embedded base of every websocket handler.
type WSHandler struct {
	App *app.App
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(a *app.App) *WSHandler {
	return &WSHandler{App: a}
}

func (h *WSHandler) logError(c *pkgapp.WebsocketClient, method string, err error) {
	var uid int64
	if c != nil && c.User != nil {
		uid = c.User.UID
	}
	h.App.Logger().Error(method, zap.Error(err), zap.Int64("uid", uid))
}

// respondError logs the failure and sends a detailed error frame.
func (h *WSHandler) respondError(c *pkgapp.WebsocketClient, codeErr *code.Code, err error, method string) {
	h.logError(c, method, err)
	c.ToResponse(codeErr.Clone().WithDetails(err.Error()), method)
}
