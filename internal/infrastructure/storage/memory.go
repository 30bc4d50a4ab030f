package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	catalogapp "github.com/shopfront/backend/internal/application/catalog"
)

var _ catalogapp.FileStorage = (*MemoryFileStorage)(nil)

// MemoryFileStorage keeps uploads in process memory. Used in development when
// no bucket is configured, and in tests.
type MemoryFileStorage struct {
	// BaseURL is prepended to keys to build the returned URL
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// StoredObject is one upload held by MemoryFileStorage
type StoredObject struct {
	ContentType string
	Data        []byte
}

// NewMemoryFileStorage creates an empty MemoryFileStorage
func NewMemoryFileStorage(baseURL string) *MemoryFileStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/media"
	}
	return &MemoryFileStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]StoredObject),
	}
}

// Put reads body fully and stores it under key
func (s *MemoryFileStorage) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	s.mu.Lock()
	s.objects[key] = StoredObject{ContentType: contentType, Data: buf.Bytes()}
	s.mu.Unlock()

	return s.BaseURL + "/" + key, nil
}

// Delete drops key. Missing keys are ignored.
func (s *MemoryFileStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Get returns the stored object for key
func (s *MemoryFileStorage) Get(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (s *MemoryFileStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
