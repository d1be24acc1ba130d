package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
)

var ErrContentNotFound = errors.New("content not found")

func (r *Repository) GetContent(ctx context.Context, id uuid.UUID, kind model.TargetType) (*model.Content, error) {
	var content model.Content
	err := r.db.GetContext(ctx, &content, "SELECT * FROM content WHERE id = $1 AND kind = $2", id, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

// CreateContent registers a forum post or comment so votes can resolve
// its author. Called by the forum app when content is published.
func (r *Repository) CreateContent(ctx context.Context, content *model.Content) error {
	query := `
		INSERT INTO content (id, author_id, kind)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	return r.db.QueryRowContext(ctx, query,
		content.ID,
		content.AuthorID,
		content.Kind,
	).Scan(&content.CreatedAt)
}
