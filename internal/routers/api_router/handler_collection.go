package api_router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
	"github.com/notehub/note-hub-service/internal/dto"
	pkgapp "github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
	"github.com/notehub/note-hub-service/pkg/convert"
	apperrors "github.com/notehub/note-hub-service/pkg/errors"
)

// CollectionHandler serves collections and their memberships.
type CollectionHandler struct {
	*Handler
}

// NewCollectionHandler creates a CollectionHandler.
func NewCollectionHandler(a *app.App) *CollectionHandler {
	return &CollectionHandler{Handler: NewHandler(a)}
}

func collectionID(c *gin.Context) int64 {
	return convert.StrTo(c.Param("id")).MustInt64()
}

// Create handles POST /api/collections.
func (h *CollectionHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CollectionCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CollectionHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	coll, err := h.App.CollectionService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "CollectionHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(coll))
}

// Get handles GET /api/collections/:id.
func (h *CollectionHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	coll, err := h.App.CollectionService.Get(ctx, uid, collectionID(c))
	if err != nil {
		h.logError(ctx, "CollectionHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(coll))
}

// Update handles PATCH /api/collections/:id.
func (h *CollectionHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CollectionUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CollectionHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	coll, err := h.App.CollectionService.Update(ctx, uid, collectionID(c), params)
	if err != nil {
		h.logError(ctx, "CollectionHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(coll))
}

// Delete handles DELETE /api/collections/:id.
func (h *CollectionHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.CollectionService.Delete(ctx, uid, collectionID(c)); err != nil {
		h.logError(ctx, "CollectionHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List handles GET /api/collections.
func (h *CollectionHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	colls, err := h.App.CollectionService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "CollectionHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, colls, len(colls))
}

// AddNote handles POST /api/collections/:id/notes/:noteId.
func (h *CollectionHandler) AddNote(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	nid := convert.StrTo(c.Param("noteId")).MustInt64()

	ctx := c.Request.Context()
	if err := h.App.CollectionService.AddNote(ctx, uid, collectionID(c), nid); err != nil {
		h.logError(ctx, "CollectionHandler.AddNote", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// RemoveNote handles DELETE /api/collections/:id/notes/:noteId.
func (h *CollectionHandler) RemoveNote(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	nid := convert.StrTo(c.Param("noteId")).MustInt64()

	ctx := c.Request.Context()
	if err := h.App.CollectionService.RemoveNote(ctx, uid, collectionID(c), nid); err != nil {
		h.logError(ctx, "CollectionHandler.RemoveNote", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Notes handles GET /api/collections/:id/notes.
func (h *CollectionHandler) Notes(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	notes, err := h.App.CollectionService.Notes(ctx, uid, collectionID(c))
	if err != nil {
		h.logError(ctx, "CollectionHandler.Notes", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, notes, len(notes))
}
