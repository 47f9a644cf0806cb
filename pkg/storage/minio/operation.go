package minio

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/notehub/note-hub-service/pkg/fileurl"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

func (p *MinIO) objectKey(pathKey string) string {
	if p.Config.CustomPath == "" {
		return pathKey
	}
	return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
}

func (p *MinIO) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	fileKey := p.objectKey(pathKey)

	_, err := p.Client.PutObject(context.Background(), p.Config.BucketName, fileKey, file, -1,
		minio.PutObjectOptions{ContentType: cType})
	if err != nil {
		return "", errors.Wrap(err, "minio")
	}
	return fileKey, nil
}

func (p *MinIO) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	fileKey := p.objectKey(pathKey)

	_, err := p.Client.PutObject(context.Background(), p.Config.BucketName, fileKey,
		bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{})
	if err != nil {
		return "", errors.Wrap(err, "minio")
	}
	return fileKey, nil
}
