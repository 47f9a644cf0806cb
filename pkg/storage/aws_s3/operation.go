package aws_s3

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/notehub/note-hub-service/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

func (p *S3) objectKey(pathKey string) string {
	if p.Config.CustomPath == "" {
		return pathKey
	}
	return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
}

func (p *S3) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	fileKey := p.objectKey(pathKey)

	_, err := p.S3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(fileKey),
		Body:        file,
		ContentType: aws.String(cType),
	})
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return fileKey, nil
}

func (p *S3) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	return p.SendFile(pathKey, bytes.NewReader(content), "", modTime)
}
