package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes receipts to a directory served as static files by the
// API. Paths are slash-separated keys ({event-slug}/{file}); anything
// escaping the root is rejected.
type LocalStore struct {
	root      string
	publicURL string
}

func NewLocalStore(root, publicURL string) *LocalStore {
	return &LocalStore{
		root:      root,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *LocalStore) Upload(ctx context.Context, path string, contentType string, r io.Reader) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid upload path %q", path)
	}

	target := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	defer f.Close()

	if _, err = io.Copy(f, r); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	return s.publicURL + "/" + filepath.ToSlash(clean), nil
}
