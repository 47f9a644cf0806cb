package minio

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	UseSSL          bool   `yaml:"use-ssl"`
	CustomPath      string `yaml:"custom-path"`
}

type MinIO struct {
	Client *minio.Client
	Config *Config
}

var clients = make(map[string]*MinIO)

func NewClient(conf *Config) (*MinIO, error) {
	if clients[conf.AccessKeyID] != nil {
		return clients[conf.AccessKeyID], nil
	}

	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.AccessKeySecret, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio")
	}

	clients[conf.AccessKeyID] = &MinIO{
		Client: client,
		Config: conf,
	}
	return clients[conf.AccessKeyID], nil
}
