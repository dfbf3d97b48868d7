package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps assets on the local filesystem. Used for development and
// tests; the file handle is the path relative to basePath.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates a filesystem-backed asset store.
func NewLocalStore(cfg Config) (*LocalStore, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}

	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Upload writes the file under basePath and returns its relative path as the
// file handle.
func (s *LocalStore) Upload(ctx context.Context, reader io.Reader, fileName, folder string) (*Asset, error) {
	key := objectKey(folder, fileName)
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &Asset{
		URL:    s.baseURL + "/" + key,
		FileID: key,
	}, nil
}

// Delete removes the file behind fileID. A missing file is not an error;
// the handle may already have been cleaned up.
func (s *LocalStore) Delete(ctx context.Context, fileID string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(fileID))

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
