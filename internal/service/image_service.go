package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"scriptum/internal/models"
	"scriptum/internal/storage"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService stores cover and portrait images in blob storage under a
// content-addressed key, so re-uploading identical bytes is a no-op.
type ImageService struct {
	store    storage.ImageStore
	maxBytes int64
}

// NewImageService returns a new ImageService. maxUploadSizeMB bounds the
// accepted payload size.
func NewImageService(store storage.ImageStore, maxUploadSizeMB int) *ImageService {
	return &ImageService{
		store:    store,
		maxBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload validates the payload and stores it, returning the object key the
// caller embeds as an image URL. The key is the sha256 of the content plus
// an extension matching the detected type.
func (s *ImageService) Upload(ctx context.Context, data []byte) (string, error) {
	if s.store == nil {
		return "", models.NewInternalError(fmt.Errorf("image storage is not configured"))
	}
	if len(data) == 0 {
		return "", models.NewValidationError("Image payload is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("Image exceeds the %d MB upload limit", s.maxBytes/(1024*1024)))
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", models.NewValidationError("Unsupported image type; use JPEG, PNG, GIF or WebP")
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:]) + ext

	if err := s.store.Upload(ctx, key, data, contentType); err != nil {
		return "", models.NewInternalError(fmt.Errorf("image upload: %w", err))
	}
	return key, nil
}

// Download returns the stored bytes and content type for an object key.
func (s *ImageService) Download(ctx context.Context, key string) ([]byte, string, error) {
	if s.store == nil {
		return nil, "", models.NewInternalError(fmt.Errorf("image storage is not configured"))
	}
	if key == "" || strings.Contains(key, "/") {
		return nil, "", models.NewValidationError("Invalid image key")
	}
	data, contentType, err := s.store.Download(ctx, key)
	if err != nil {
		return nil, "", models.NewNotFoundError("Image", key)
	}
	return data, contentType, nil
}

// Delete removes a stored image.
func (s *ImageService) Delete(ctx context.Context, key string) error {
	if s.store == nil {
		return models.NewInternalError(fmt.Errorf("image storage is not configured"))
	}
	if key == "" || strings.Contains(key, "/") {
		return models.NewValidationError("Invalid image key")
	}
	return s.store.Remove(ctx, key)
}
