package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/brainbox/internal/model"
	"github.com/templui/brainbox/internal/repository"
	"github.com/templui/brainbox/internal/storage"
)

var ErrExportUnavailable = errors.New("collection export is not configured")

// collectionExport is the document written to object storage.
type collectionExport struct {
	UserID     string           `json:"userId"`
	ExportedAt time.Time        `json:"exportedAt"`
	Content    []*model.Content `json:"content"`
}

type ExportService struct {
	contentRepository repository.ContentRepository
	storage           storage.Storage
	expiry            time.Duration
}

// NewExportService accepts a nil storage; Export then returns ErrExportUnavailable.
func NewExportService(contentRepository repository.ContentRepository, storage storage.Storage, expiry time.Duration) *ExportService {
	return &ExportService{
		contentRepository: contentRepository,
		storage:           storage,
		expiry:            expiry,
	}
}

// Export writes the owner's whole collection as JSON and returns a
// presigned download URL for it.
func (s *ExportService) Export(ctx context.Context, userID string) (string, error) {
	if s.storage == nil {
		return "", ErrExportUnavailable
	}

	contents, err := s.contentRepository.Contents(ctx, userID, "")
	if err != nil {
		return "", fmt.Errorf("failed to list content: %w", err)
	}

	now := time.Now().UTC()
	body, err := json.Marshal(collectionExport{
		UserID:     userID,
		ExportedAt: now,
		Content:    contents,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%d.json", userID, now.Unix())
	err = s.storage.Save(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to save export: %w", err)
	}

	url, err := s.storage.PresignedURL(ctx, key, s.expiry)
	if err != nil {
		// Nobody can fetch it without a URL
		delErr := s.storage.Delete(ctx, key)
		if delErr != nil {
			slog.Error("failed to delete export during cleanup", "error", delErr, "key", key)
		}
		return "", fmt.Errorf("failed to presign export: %w", err)
	}

	slog.Info("collection exported", "user_id", userID, "items", len(contents))
	return url, nil
}
