package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/templui/brainbox/internal/model"
	"github.com/templui/brainbox/internal/repository"
)

// ErrContentNotFound is returned for both a missing item and an item owned by
// another user.
var ErrContentNotFound = errors.New("content not found")

type ContentService struct {
	contentRepository repository.ContentRepository
}

func NewContentService(contentRepository repository.ContentRepository) *ContentService {
	return &ContentService{
		contentRepository: contentRepository,
	}
}

// Create stores an item for the owner as given.
// Field validation happens in the HTTP layer before Create is called.
func (s *ContentService) Create(ctx context.Context, userID, title, kind, locator string) (*model.Content, error) {
	content := &model.Content{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Kind:      kind,
		Locator:   locator,
		CreatedAt: time.Now().UTC(),
	}

	err := s.contentRepository.Create(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	return content, nil
}

// Contents lists the owner's items newest first, optionally filtered by kind.
func (s *ContentService) Contents(ctx context.Context, userID, kind string) ([]*model.Content, error) {
	contents, err := s.contentRepository.Contents(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	return contents, nil
}

func (s *ContentService) Delete(ctx context.Context, userID, contentID string) error {
	err := s.contentRepository.Delete(ctx, userID, contentID)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}
