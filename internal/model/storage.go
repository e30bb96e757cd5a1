package model

import (
	"context"
	"io"
)

// Storage persists uploaded project files under a key.
// Download returns ErrNotFound for unknown keys; Delete of an unknown key is not an error.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
