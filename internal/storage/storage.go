package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Asset is the result of a remote upload: the public URL to store alongside
// the image row, and the handle needed to delete the object later.
type Asset struct {
	URL    string
	FileID string
}

// AssetStore is the remote object store the portfolio images live in.
// Upload failures abort the surrounding write; Delete is best-effort cleanup
// issued only after the database transaction has committed.
type AssetStore interface {
	Upload(ctx context.Context, reader io.Reader, fileName, folder string) (*Asset, error)
	Delete(ctx context.Context, fileID string) error
}

// Config holds asset-store configuration.
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for S3/R2
	Region    string // for S3
	AccessKey string // for S3/R2
	SecretKey string // for S3/R2
	Endpoint  string // for R2 or custom S3
}

// NewAssetStore creates an asset store from configuration.
func NewAssetStore(cfg Config) (AssetStore, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStore(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// objectKey builds a collision-free key under folder. The key doubles as the
// file handle, so it must be stable for the object's whole lifetime.
func objectKey(folder, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	return path.Join(strings.Trim(folder, "/"), uuid.NewString()+"-"+base)
}
