package blob

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileStorage writes uploaded bytes under a local directory and resolves
// keys against a public base URL, standing in for the hosted bucket.
type FileStorage struct {
	dir     string
	baseURL string
}

func NewFileStorage(dir, baseURL string) *FileStorage {
	return &FileStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *FileStorage) Upload(key string, content io.Reader) error {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create blob directory")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create blob file")
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return errors.Wrapf(err, "write blob %s", key)
	}
	return nil
}

func (s *FileStorage) PublicURL(key string) (string, error) {
	return s.baseURL + "/" + key, nil
}
