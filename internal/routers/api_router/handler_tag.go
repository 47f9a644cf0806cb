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

// TagHandler serves note tags.
type TagHandler struct {
	*Handler
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(a *app.App) *TagHandler {
	return &TagHandler{Handler: NewHandler(a)}
}

// Add handles POST /api/notes/:id/tags.
func (h *TagHandler) Add(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TagAddRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TagHandler.Add.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	tag, err := h.App.TagService.Add(ctx, uid, noteID(c), params)
	if err != nil {
		h.logError(ctx, "TagHandler.Add", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tag))
}

// Remove handles DELETE /api/notes/:id/tags/:name.
func (h *TagHandler) Remove(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.TagService.Remove(ctx, uid, noteID(c), c.Param("name")); err != nil {
		h.logError(ctx, "TagHandler.Remove", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List handles GET /api/notes/:id/tags.
func (h *TagHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	tags, err := h.App.TagService.List(ctx, uid, noteID(c))
	if err != nil {
		h.logError(ctx, "TagHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, tags, len(tags))
}

// Popular handles GET /api/tags/popular.
func (h *TagHandler) Popular(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	tags, err := h.App.TagService.Popular(ctx, uid)
	if err != nil {
		h.logError(ctx, "TagHandler.Popular", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, tags, len(tags))
}

// Notes handles GET /api/tags/:name/notes.
func (h *TagHandler) Notes(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	ids, err := h.App.TagService.NoteIDs(ctx, uid, c.Param("name"))
	if err != nil {
		h.logError(ctx, "TagHandler.Notes", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, ids, len(ids))
}
