package storage

import (
	"context"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("объект не найден в хранилище")

// FileStorage addresses objects by key within one bucket.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, objectKey, contentType string) (string, error)

	DeleteFile(ctx context.Context, objectKey string) error

	GetFile(ctx context.Context, objectKey string) ([]byte, error)

	GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}
