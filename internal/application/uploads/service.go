package uploads

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorageService abstracts the presigned-URL object storage backend
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL for the storage key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a presigned GET URL for the storage key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObject removes the object from storage
	DeleteObject(ctx context.Context, storageKey string) error
	// ObjectExists reports whether the object has actually been uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// Category classifies what an upload is for. It decides the key prefix and
// the accepted content types.
type Category string

const (
	CategoryDonationImage        Category = "donation-image"
	CategoryAadharDocument       Category = "aadhar-document"
	CategoryOrganizationDocument Category = "organization-document"
)

// IsValid checks if the category is a supported value
func (c Category) IsValid() bool {
	switch c {
	case CategoryDonationImage, CategoryAadharDocument, CategoryOrganizationDocument:
		return true
	}
	return false
}

func (c Category) prefix() string {
	switch c {
	case CategoryDonationImage:
		return "donations"
	case CategoryAadharDocument:
		return "aadhar"
	case CategoryOrganizationDocument:
		return "org-documents"
	}
	return "misc"
}

var allowedContentTypes = map[Category]map[string]string{
	CategoryDonationImage: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	},
	CategoryAadharDocument: {
		"application/pdf": ".pdf",
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
	},
	CategoryOrganizationDocument: {
		"application/pdf": ".pdf",
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
	},
}

// PresignedUpload is the result of a presign request
type PresignedUpload struct {
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PresignedDownload is a time-limited download link for a stored object
type PresignedDownload struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service issues presigned upload and download URLs for food images and
// verification documents. Clients upload directly to object storage and then
// register the returned key on the owning aggregate.
type Service struct {
	storage ObjectStorageService
	logger  *zap.Logger
}

// NewService creates a new uploads Service
func NewService(storage ObjectStorageService, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// PresignUpload validates the content type for the category and returns a
// presigned PUT URL. ownerID scopes the key to the owning record.
func (s *Service) PresignUpload(ctx context.Context, category Category, ownerID uuid.UUID, contentType string) (*PresignedUpload, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown upload category: "+string(category))
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}

	ext, ok := allowedContentTypes[category][strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE",
			fmt.Sprintf("Content type %q is not accepted for %s uploads", contentType, category))
	}

	objectKey := path.Join(category.prefix(), ownerID.String(), uuid.NewString()+ext)

	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, objectKey, contentType, 0)
	if err != nil {
		s.logger.Error("generating upload url", zap.String("object_key", objectKey), zap.Error(err))
		return nil, err
	}

	return &PresignedUpload{
		ObjectKey: objectKey,
		URL:       url,
		ExpiresAt: expiresAt,
	}, nil
}

// PresignDownload returns a presigned GET URL for a previously uploaded
// object. Returns NotFound if the object was never uploaded.
func (s *Service) PresignDownload(ctx context.Context, objectKey string) (*PresignedDownload, error) {
	if objectKey == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KEY", "Object key cannot be empty")
	}

	exists, err := s.storage.ObjectExists(ctx, objectKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, objectKey, 0)
	if err != nil {
		return nil, err
	}

	return &PresignedDownload{
		URL:       url,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmUpload verifies that a presigned upload actually landed in storage
// before the key is registered on an aggregate.
func (s *Service) ConfirmUpload(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return shared.NewDomainError("INVALID_DOCUMENT_KEY", "Object key cannot be empty")
	}
	exists, err := s.storage.ObjectExists(ctx, objectKey)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("UPLOAD_NOT_FOUND", "No uploaded object found for the given key")
	}
	return nil
}

// Delete removes an uploaded object, for example after a donation is deleted
func (s *Service) Delete(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return shared.NewDomainError("INVALID_DOCUMENT_KEY", "Object key cannot be empty")
	}
	return s.storage.DeleteObject(ctx, objectKey)
}
