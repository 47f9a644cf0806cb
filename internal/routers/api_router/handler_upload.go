package api_router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
	pkgapp "github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
	apperrors "github.com/notehub/note-hub-service/pkg/errors"
)

// UploadHandler serves image upload and removal for note attachments.
type UploadHandler struct {
	*Handler
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(a *app.App) *UploadHandler {
	return &UploadHandler{Handler: NewHandler(a)}
}

// Image handles POST /api/upload/image.
func (h *UploadHandler) Image(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if h.App.UploadService == nil {
		response.ToResponse(code.ErrorInvalidStorageType)
		return
	}

	file, fileHeader, err := c.Request.FormFile("imagefile")
	if err != nil {
		h.App.Logger().Error("UploadHandler.Image.FormFile errs", zap.Error(err))
		response.ToResponse(code.ErrorInvalidParams)
		return
	}
	defer file.Close()

	info, err := h.App.UploadService.UploadImage(uid, file, fileHeader)
	if err != nil {
		h.logError(c.Request.Context(), "UploadHandler.Image", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(info))
}

// DeleteImage handles DELETE /api/upload/image.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if h.App.UploadService == nil {
		response.ToResponse(code.ErrorInvalidStorageType)
		return
	}

	pathKey := c.Query("path")
	if pathKey == "" {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	if err := h.App.UploadService.DeleteImage(uid, pathKey); err != nil {
		h.logError(c.Request.Context(), "UploadHandler.DeleteImage", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
