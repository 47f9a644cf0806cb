package api_router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
	"github.com/notehub/note-hub-service/internal/dto"
	pkgapp "github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
	apperrors "github.com/notehub/note-hub-service/pkg/errors"
)

// ShareHandler serves note sharing and the public feed.
type ShareHandler struct {
	*Handler
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(a *app.App) *ShareHandler {
	return &ShareHandler{Handler: NewHandler(a)}
}

// Share handles POST /api/notes/:id/share.
func (h *ShareHandler) Share(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	share, err := h.App.NoteService.Share(ctx, uid, noteID(c))
	if err != nil {
		h.logError(ctx, "ShareHandler.Share", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(share))
}

// Unshare handles DELETE /api/notes/:id/share.
func (h *ShareHandler) Unshare(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.NoteService.Unshare(ctx, uid, noteID(c)); err != nil {
		h.logError(ctx, "ShareHandler.Unshare", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// GetShared handles GET /api/shared/:shareId without auth.
func (h *ShareHandler) GetShared(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	shareID := c.Param("shareId")
	if shareID == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("shareId required"))
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.GetShared(ctx, shareID)
	if err != nil {
		h.logError(ctx, "ShareHandler.GetShared", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Explore handles GET /api/explore without auth.
func (h *ShareHandler) Explore(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ExploreListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ShareHandler.Explore.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	notes, err := h.App.NoteService.Explore(ctx, params)
	if err != nil {
		h.logError(ctx, "ShareHandler.Explore", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, notes, len(notes))
}
