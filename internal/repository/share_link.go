package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/brainbox/internal/model"
)

var (
	ErrShareLinkNotFound = errors.New("share link not found")
	// ErrShareLinkConflict is returned by Create when the owner already has an
	// active link or the hash is taken.
	ErrShareLinkConflict = errors.New("share link conflict")
)

type ShareLinkRepository interface {
	Create(ctx context.Context, link *model.ShareLink) error
	ActiveByUserID(ctx context.Context, userID string) (*model.ShareLink, error)
	ActiveByHash(ctx context.Context, hash string) (*model.ShareLink, error)
	Deactivate(ctx context.Context, userID string) (*model.ShareLink, error)
}

type shareLinkRepository struct {
	db *sqlx.DB
}

func NewShareLinkRepository(db *sqlx.DB) ShareLinkRepository {
	return &shareLinkRepository{db: db}
}

func (r *shareLinkRepository) Create(ctx context.Context, link *model.ShareLink) error {
	query := `
		INSERT INTO share_links (id, user_id, hash, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		link.ID,
		link.UserID,
		link.Hash,
		link.Active,
		link.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrShareLinkConflict
		}
		return err
	}

	return nil
}

func (r *shareLinkRepository) ActiveByUserID(ctx context.Context, userID string) (*model.ShareLink, error) {
	return r.active(ctx, `SELECT * FROM share_links WHERE user_id = $1 AND active = TRUE`, userID)
}

// ActiveByHash never matches a disabled row, so a revoked hash looks exactly like
// one that was never issued.
func (r *shareLinkRepository) ActiveByHash(ctx context.Context, hash string) (*model.ShareLink, error) {
	return r.active(ctx, `SELECT * FROM share_links WHERE hash = $1 AND active = TRUE`, hash)
}

func (r *shareLinkRepository) active(ctx context.Context, query string, arg string) (*model.ShareLink, error) {
	link := &model.ShareLink{}

	err := r.db.GetContext(ctx, link, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShareLinkNotFound
	}
	if err != nil {
		return nil, err
	}

	return link, nil
}

// Deactivate atomically flips the owner's active link off and returns it.
// Two concurrent calls cannot both succeed: the loser sees ErrShareLinkNotFound.
func (r *shareLinkRepository) Deactivate(ctx context.Context, userID string) (*model.ShareLink, error) {
	link := &model.ShareLink{}

	query := `
		UPDATE share_links
		SET active = FALSE, disabled_at = $1
		WHERE user_id = $2
		AND active = TRUE
		RETURNING *
	`

	err := r.db.GetContext(ctx, link, query, time.Now().UTC(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShareLinkNotFound
	}
	if err != nil {
		return nil, err
	}

	return link, nil
}
