package storage

//go:generate mockgen -source=./storage.go -destination=../mocks/mock_storage.go -package=mocks Storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/anonto42/introhub/backend/pkg/config"
	"github.com/google/uuid"
)

// Storage stores uploaded files and returns the URL they are served from.
type Storage interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the storage backend selected by cfg.Provider.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// ObjectKey returns a collision free key under prefix that keeps the
// original file extension.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
