package service

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/pkg/code"
	"github.com/notehub/note-hub-service/pkg/fileurl"
	"github.com/notehub/note-hub-service/pkg/storage"
)

// FileInfo describes a stored upload.
type FileInfo struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// UploadServiceConfig bounds accepted image uploads.
type UploadServiceConfig struct {
	// AllowExts lists accepted extensions, e.g. ".jpg".
	AllowExts []string
	// MaxSizeMB caps the upload size in megabytes.
	MaxSizeMB int
	// URLPrefix prefixes returned file URLs, e.g. a CDN host or the
	// local httpfs mount.
	URLPrefix string
}

// UploadService stores note image attachments on the configured
// object storage backend.
type UploadService interface {
	// UploadImage stores an image under the user's date-scoped path
	// and returns its public location.
	UploadImage(uid int64, file multipart.File, header *multipart.FileHeader) (*FileInfo, error)

	// DeleteImage removes a stored image by its path key.
	DeleteImage(uid int64, pathKey string) error
}

type uploadService struct {
	store  storage.Storager
	logger *zap.Logger
	config UploadServiceConfig
}

// NewUploadService wires the upload service.
func NewUploadService(store storage.Storager, logger *zap.Logger, config UploadServiceConfig) UploadService {
	if len(config.AllowExts) == 0 {
		config.AllowExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	}
	if config.MaxSizeMB <= 0 {
		config.MaxSizeMB = 10
	}
	return &uploadService{
		store:  store,
		logger: logger,
		config: config,
	}
}

func (s *uploadService) UploadImage(uid int64, file multipart.File, header *multipart.FileHeader) (*FileInfo, error) {
	if s.store == nil {
		return nil, code.ErrorInvalidStorageType
	}

	name := fileurl.GetFileNameOrRandom(header.Filename)
	if !fileurl.IsContainExt(fileurl.ImageType, name, s.config.AllowExts) {
		return nil, code.ErrorUploadFileInvalid.WithDetails("extension not allowed: " + fileurl.GetFileExt(name))
	}
	if fileurl.IsFileSizeExceeded(fileurl.ImageType, file, s.config.MaxSizeMB) {
		return nil, code.ErrorUploadFileInvalid.WithDetails(fmt.Sprintf("file exceeds %dMB", s.config.MaxSizeMB))
	}

	pathKey := fmt.Sprintf("uploads/%d/%s%s", uid, fileurl.GetDatePath(""), name)
	cType := header.Header.Get("Content-Type")

	url, err := s.store.SendFile(pathKey, file, cType, time.Now())
	if err != nil {
		s.logger.Error("image upload", zap.Int64("uid", uid), zap.String("path", pathKey), zap.Error(err))
		return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}
	if s.config.URLPrefix != "" {
		url = strings.TrimSuffix(s.config.URLPrefix, "/") + "/" + pathKey
	}

	return &FileInfo{URL: url, Path: pathKey, Size: header.Size}, nil
}

func (s *uploadService) DeleteImage(uid int64, pathKey string) error {
	if s.store == nil {
		return code.ErrorInvalidStorageType
	}
	// keys are user scoped, never accept a foreign or traversing path
	prefix := fmt.Sprintf("uploads/%d/", uid)
	if !strings.HasPrefix(pathKey, prefix) || strings.Contains(pathKey, "..") {
		return code.ErrorFileDeleteFailed.WithDetails("path outside the user scope")
	}

	if err := s.store.Delete(pathKey); err != nil {
		s.logger.Error("image delete", zap.Int64("uid", uid), zap.String("path", pathKey), zap.Error(err))
		return code.ErrorFileDeleteFailed.WithDetails(err.Error())
	}
	return nil
}
