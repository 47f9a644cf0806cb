package minio

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

func (p *MinIO) Delete(pathKey string) error {
	err := p.Client.RemoveObject(context.Background(), p.Config.BucketName, p.objectKey(pathKey),
		minio.RemoveObjectOptions{})
	return errors.Wrap(err, "minio")
}
