package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/brainbox/internal/model"
)

var (
	// ErrContentNotFound covers both a missing id and an id owned by someone else.
	ErrContentNotFound = errors.New("content not found")
)

type ContentRepository interface {
	Create(ctx context.Context, content *model.Content) error
	Contents(ctx context.Context, userID, kind string) ([]*model.Content, error)
	Delete(ctx context.Context, userID, contentID string) error
}

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, content *model.Content) error {
	query := `INSERT INTO contents (id, user_id, title, kind, locator, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		content.ID,
		content.UserID,
		content.Title,
		content.Kind,
		content.Locator,
		content.CreatedAt,
	)

	return err
}

// Contents lists the user's items newest first. An empty kind lists every kind.
func (r *contentRepository) Contents(ctx context.Context, userID, kind string) ([]*model.Content, error) {
	contents := []*model.Content{}

	query := `SELECT * FROM contents WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if kind != "" {
		query = `SELECT * FROM contents WHERE user_id = $1 AND kind = $2 ORDER BY created_at DESC, id DESC`
		args = append(args, kind)
	}

	err := r.db.SelectContext(ctx, &contents, query, args...)
	if err != nil {
		return nil, err
	}

	return contents, nil
}

func (r *contentRepository) Delete(ctx context.Context, userID, contentID string) error {
	query := `DELETE FROM contents WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, contentID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrContentNotFound
	}

	return nil
}
