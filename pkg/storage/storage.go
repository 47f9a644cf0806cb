// Package storage provides a pluggable object storage layer for note
// image attachments.
package storage

import (
	"io"
	"time"

	"github.com/notehub/note-hub-service/pkg/code"
	"github.com/notehub/note-hub-service/pkg/storage/aws_s3"
	"github.com/notehub/note-hub-service/pkg/storage/local_fs"
	"github.com/notehub/note-hub-service/pkg/storage/minio"
)

type Type = string

const S3 Type = "s3"
const LOCAL Type = "localfs"
const MinIO Type = "minio"

var StorageTypeMap = map[Type]bool{
	S3:    true,
	LOCAL: true,
	MinIO: true,
}

// Config is the unified storage configuration.
type Config struct {
	Type Type `yaml:"type"`

	IsEnabled  bool   `yaml:"is-enable"`
	CustomPath string `yaml:"custom-path"`

	// Cloud storage (S3 / MinIO)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	UseSSL          bool   `yaml:"use-ssl"`

	// Local FS
	SavePath       string `yaml:"save-path"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable"`
}

type Storager interface {
	SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	SendContent(pathKey string, content []byte, modTime time.Time) (string, error)
	Delete(pathKey string) error
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			IsEnabled:      config.IsEnabled,
			HttpfsIsEnable: config.HttpfsIsEnable,
			SavePath:       config.SavePath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			IsEnabled:       config.IsEnabled,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case MinIO:
		return minio.NewClient(&minio.Config{
			IsEnabled:       config.IsEnabled,
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			UseSSL:          config.UseSSL,
			CustomPath:      config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
