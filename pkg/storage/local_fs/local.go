package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/notehub/note-hub-service/pkg/fileurl"
)

type Config struct {
	IsEnabled      bool   `yaml:"is-enable" default:"true"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	SavePath       string `yaml:"save-path" default:"storage/uploads"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		conf.SavePath = "storage/uploads"
	}
	return &LocalFS{Config: conf}, nil
}

func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}

// SendFile writes the reader to the save path and keeps the given mod time.
func (p *LocalFS) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dst := p.getSavePath() + pathKey

	if err := os.MkdirAll(filepath.Dir(dst), 0754); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dst, modTime, modTime); err != nil {
			return "", err
		}
	}
	return dst, nil
}

func (p *LocalFS) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	dst := p.getSavePath() + pathKey

	if err := os.MkdirAll(filepath.Dir(dst), 0754); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", err
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(dst, modTime, modTime); err != nil {
			return "", err
		}
	}
	return dst, nil
}

func (p *LocalFS) Delete(pathKey string) error {
	dst := p.getSavePath() + pathKey
	if fileurl.IsExist(dst) {
		return os.Remove(dst)
	}
	return nil
}
