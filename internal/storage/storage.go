package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"kairo_backend/internal/config"
)

// Storage abstracts where uploaded files (resumes, profile pictures) live.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a stable public URL for the file.
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL returns a temporary URL for private files. Backends
	// without signing fall back to GetURL.
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	GetSize(ctx context.Context, path string) (int64, error)
}

// NewStorage picks a backend from configuration. "cloudflare_r2" is the
// S3 backend pointed at an R2 endpoint.
func NewStorage(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
