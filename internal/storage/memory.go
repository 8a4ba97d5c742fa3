package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// MemoryStorage keeps objects in process memory. Presigned URLs use the
// memory:// scheme and are not served over HTTP.
type MemoryStorage struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string][]byte
}

func NewMemoryStorage(bucket string) *MemoryStorage {
	return &MemoryStorage{
		bucket:  bucket,
		objects: make(map[string][]byte),
	}
}

func (s *MemoryStorage) UploadFile(_ context.Context, data []byte, objectKey, _ string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("пустые данные файла")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey] = append([]byte(nil), data...)
	return objectKey, nil
}

func (s *MemoryStorage) DeleteFile(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey)
	return nil
}

func (s *MemoryStorage) GetFile(_ context.Context, objectKey string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[objectKey]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStorage) GetPresignedURL(_ context.Context, objectKey string, expiry time.Duration) (string, error) {
	s.mu.RLock()
	_, ok := s.objects[objectKey]
	s.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}

	u := url.URL{
		Scheme:   "memory",
		Host:     s.bucket,
		Path:     "/" + objectKey,
		RawQuery: fmt.Sprintf("expires=%d", time.Now().Add(expiry).Unix()),
	}
	return u.String(), nil
}
