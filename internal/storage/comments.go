package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yeabjr51-ship-it/eauf/internal/model"
)

// CommentStore persists comments attached to confessions.
type CommentStore struct {
	db *sqlx.DB
}

// NewCommentStore wraps a connected pool.
func NewCommentStore(db *sqlx.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Insert stores a new comment and returns its assigned id. The foreign
// key guarantees the parent confession exists.
func (s *CommentStore) Insert(ctx context.Context, confessionID int64, text, avatar string, ts int64) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		`INSERT INTO comments (confession_id, text, avatar, timestamp) VALUES ($1, $2, $3, $4) RETURNING id`,
		confessionID, text, avatar, ts,
	)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return id, nil
}

// Count returns the number of comments on a confession.
func (s *CommentStore) Count(ctx context.Context, confessionID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comments WHERE confession_id = $1`,
		confessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

// ListPage returns one page of comments ordered newest first.
func (s *CommentStore) ListPage(ctx context.Context, confessionID int64, limit, offset int) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.SelectContext(ctx, &comments,
		`SELECT id, confession_id, text, avatar, timestamp
		 FROM comments WHERE confession_id = $1
		 ORDER BY id DESC LIMIT $2 OFFSET $3`,
		confessionID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
