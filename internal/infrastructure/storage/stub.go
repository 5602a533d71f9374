package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/foodbridge/backend/internal/application/uploads"
)

// StubObjectStorage is an in-memory implementation of ObjectStorageService.
// It is used in development and in tests where no real bucket is available.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated upload/download URLs
	BaseURL string

	mu       sync.Mutex
	uploaded map[string]bool
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL:  "https://storage.example.com",
		uploaded: make(map[string]bool),
	}
}

// Ensure StubObjectStorage implements ObjectStorageService
var _ uploads.ObjectStorageService = (*StubObjectStorage)(nil)

// GenerateUploadURL generates a stub presigned upload URL and records the key
// as uploaded so the confirmation flow works in development.
func (s *StubObjectStorage) GenerateUploadURL(
	_ context.Context,
	storageKey, _ string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.Lock()
	s.uploaded[storageKey] = true
	s.mu.Unlock()

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL generates a stub presigned download URL
func (s *StubObjectStorage) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// DeleteObject forgets the key
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.uploaded, storageKey)
	s.mu.Unlock()
	return nil
}

// ObjectExists reports whether an upload URL was issued for the key
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploaded[storageKey], nil
}
