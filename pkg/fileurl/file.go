// Package fileurl provides file path and upload helpers.
package fileurl

import (
	"io"
	"mime/multipart"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileType int

const ImageType FileType = iota + 1

// IsDir determines if the given path is a directory.
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// GetFileExt returns the file extension including the dot.
func GetFileExt(name string) string {
	return path.Ext(name)
}

// GetFileNameOrRandom keeps the original file name unless it is the
// default clipboard name, in which case a random one is generated.
func GetFileNameOrRandom(fileName string) string {
	if fileName == "image.png" {
		fileName = uuid.New().String() + GetFileExt(fileName)
	}
	return fileName
}

// GetDatePath returns a date based save path such as "200601/02/".
func GetDatePath(timeFormat string) string {
	now := time.Now()
	if timeFormat == "" {
		timeFormat = "200601/02"
	}
	return PathSuffixCheckAdd(now.Format(timeFormat), "/")
}

// IsContainExt determines if the file extension is within the allowed set.
func IsContainExt(t FileType, name string, uploadAllowExts []string) bool {
	ext := strings.ToUpper(GetFileExt(name))
	switch t {
	case ImageType:
		for _, allowExt := range uploadAllowExts {
			if strings.ToUpper(allowExt) == ext {
				return true
			}
		}
	}
	return false
}

// IsFileSizeExceeded reports whether the file exceeds uploadMaxSize in MB.
func IsFileSizeExceeded(t FileType, f multipart.File, uploadMaxSize int) bool {
	content, _ := io.ReadAll(f)
	size := len(content)
	switch t {
	case ImageType:
		if size >= uploadMaxSize*1024*1024 {
			return true
		}
	}
	return false
}

// IsExist determines if the given path exists.
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst with the given permissions.
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// GetExePath returns the directory of the current executable.
func GetExePath() string {
	file, _ := exec.LookPath(os.Args[0])
	path, _ := filepath.Abs(file)
	index := strings.LastIndex(path, string(os.PathSeparator))
	return path[:index]
}

// PathSuffixCheckAdd appends suffix to path when it is missing.
func PathSuffixCheckAdd(path string, suffix string) string {
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}

// GetAbsPath resolves path against root, falling back to the working
// directory when the result is not absolute.
func GetAbsPath(path string, root string) string {
	if root != "" {
		root = PathSuffixCheckAdd(root, "/")
	}
	realPath := root + path
	if !filepath.IsAbs(realPath) {
		pwdDir, _ := os.Getwd()
		realPath = PathSuffixCheckAdd(pwdDir, "/") + path
	}
	return realPath
}
