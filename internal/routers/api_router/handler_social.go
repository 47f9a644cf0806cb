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

// SocialHandler serves likes and comments.
type SocialHandler struct {
	*Handler
}

// NewSocialHandler creates a SocialHandler.
func NewSocialHandler(a *app.App) *SocialHandler {
	return &SocialHandler{Handler: NewHandler(a)}
}

// ToggleLike handles POST /api/notes/:id/like.
func (h *SocialHandler) ToggleLike(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	state, err := h.App.SocialService.ToggleLike(ctx, uid, noteID(c))
	if err != nil {
		h.logError(ctx, "SocialHandler.ToggleLike", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(state))
}

// AddComment handles POST /api/notes/:id/comments.
func (h *SocialHandler) AddComment(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CommentCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SocialHandler.AddComment.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	comment, err := h.App.SocialService.AddComment(ctx, uid, noteID(c), params)
	if err != nil {
		h.logError(ctx, "SocialHandler.AddComment", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(comment))
}

// DeleteComment handles DELETE /api/comments/:commentId.
func (h *SocialHandler) DeleteComment(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	commentID := convert.StrTo(c.Param("commentId")).MustInt64()

	ctx := c.Request.Context()
	if err := h.App.SocialService.DeleteComment(ctx, uid, commentID); err != nil {
		h.logError(ctx, "SocialHandler.DeleteComment", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// ListComments handles GET /api/notes/:id/comments.
func (h *SocialHandler) ListComments(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()
	comments, err := h.App.SocialService.ListComments(ctx, noteID(c))
	if err != nil {
		h.logError(ctx, "SocialHandler.ListComments", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, comments, len(comments))
}
