package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/brainbox/internal/logger"
	"github.com/templui/brainbox/internal/markdown"
	"github.com/templui/brainbox/internal/model"
	"github.com/templui/brainbox/internal/repository"
)

var (
	ErrNoActiveLink  = errors.New("no active share link")
	ErrShareNotFound = errors.New("shared collection not found")
)

// enableAttempts bounds retries when a freshly generated hash collides with an
// existing one.
const enableAttempts = 3

type ShareService struct {
	shareLinkRepository repository.ShareLinkRepository
	userRepository      repository.UserRepository
	contentRepository   repository.ContentRepository
	parser              *markdown.Parser
	emailService        *EmailService
	newHash             func() string
}

func NewShareService(
	shareLinkRepository repository.ShareLinkRepository,
	userRepository repository.UserRepository,
	contentRepository repository.ContentRepository,
	parser *markdown.Parser,
	emailService *EmailService,
) *ShareService {
	return &ShareService{
		shareLinkRepository: shareLinkRepository,
		userRepository:      userRepository,
		contentRepository:   contentRepository,
		parser:              parser,
		emailService:        emailService,
		newHash:             rand.Text,
	}
}

// Enable returns the owner's active link, creating one if there is none.
// Calling it repeatedly, or concurrently, always converges on a single active hash.
func (s *ShareService) Enable(ctx context.Context, userID string) (*model.ShareLink, error) {
	for range enableAttempts {
		link, err := s.shareLinkRepository.ActiveByUserID(ctx, userID)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, repository.ErrShareLinkNotFound) {
			return nil, fmt.Errorf("failed to get share link: %w", err)
		}

		link = &model.ShareLink{
			ID:        uuid.New().String(),
			UserID:    userID,
			Hash:      s.newHash(),
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}

		err = s.shareLinkRepository.Create(ctx, link)
		if err == nil {
			slog.Info("share link enabled", "user_id", userID, "hash", logger.Mask(link.Hash))
			s.notifyEnabled(ctx, link)
			return link, nil
		}
		if !errors.Is(err, repository.ErrShareLinkConflict) {
			return nil, fmt.Errorf("failed to create share link: %w", err)
		}

		// Either a concurrent Enable won or the hash was taken; the next
		// iteration re-reads and returns the winner, or retries with a new hash.
		slog.Debug("share link conflict, retrying", "user_id", userID)
	}

	return nil, fmt.Errorf("failed to enable share link after %d attempts", enableAttempts)
}

// Disable deactivates the owner's link. ErrNoActiveLink if sharing was already off.
func (s *ShareService) Disable(ctx context.Context, userID string) error {
	link, err := s.shareLinkRepository.Deactivate(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrShareLinkNotFound) {
			return ErrNoActiveLink
		}
		return fmt.Errorf("failed to disable share link: %w", err)
	}

	slog.Info("share link disabled", "user_id", userID, "hash", logger.Mask(link.Hash))
	return nil
}

// Status returns the owner's active link, or nil when sharing is off.
func (s *ShareService) Status(ctx context.Context, userID string) (*model.ShareLink, error) {
	link, err := s.shareLinkRepository.ActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrShareLinkNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get share link: %w", err)
	}
	return link, nil
}

// Resolve builds the public view for an active hash. Unknown and disabled
// hashes both yield ErrShareNotFound.
func (s *ShareService) Resolve(ctx context.Context, hash string) (*model.SharedView, error) {
	link, err := s.shareLinkRepository.ActiveByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrShareLinkNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to get share link: %w", err)
	}

	user, err := s.userRepository.ByID(ctx, link.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	contents, err := s.contentRepository.Contents(ctx, link.UserID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	items := make([]model.SharedItem, 0, len(contents))
	for _, c := range contents {
		item := model.SharedItem{
			ID:        c.ID,
			Title:     c.Title,
			Kind:      c.Kind,
			Locator:   c.Locator,
			CreatedAt: c.CreatedAt,
		}
		if c.IsNote() {
			html, err := s.parser.ParseString(c.Locator)
			if err != nil {
				slog.Warn("failed to render note", "error", err, "content_id", c.ID)
			} else {
				item.HTML = html
			}
		}
		items = append(items, item)
	}

	return &model.SharedView{
		DisplayName: user.DisplayName,
		Items:       items,
	}, nil
}

func (s *ShareService) notifyEnabled(ctx context.Context, link *model.ShareLink) {
	user, err := s.userRepository.ByID(ctx, link.UserID)
	if err != nil {
		slog.Warn("failed to load user for share email", "error", err, "user_id", link.UserID)
		return
	}

	err = s.emailService.SendShareEnabledEmail(ctx, user.Email, user.DisplayName, link.Hash)
	if err != nil {
		slog.Warn("failed to send share enabled email", "error", err, "user_id", link.UserID)
	}
}
