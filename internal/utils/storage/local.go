package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type localStore struct {
	dir        string
	publicPath string
}

// NewLocalStore writes files below dir and links them under publicPath, which
// the HTTP server serves statically.
func NewLocalStore(dir, publicPath string) BlobStore {
	return &localStore{
		dir:        dir,
		publicPath: "/" + strings.Trim(publicPath, "/"),
	}
}

func (s *localStore) Store(ctx context.Context, data []byte, name string, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := objectKey(dir, SafeName(name))
	path := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return s.publicPath + "/" + key, nil
}

func (s *localStore) Delete(ctx context.Context, link string) error {
	prefix := s.publicPath + "/"
	if !strings.HasPrefix(link, prefix) {
		return nil
	}
	key := strings.TrimPrefix(link, prefix)
	if strings.Contains(key, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
