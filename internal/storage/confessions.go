// Package storage implements the confession and comment stores over
// Postgres. Every operation is a single statement; no cross-statement
// transactions are used, so counts read after inserts are advisory.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yeabjr51-ship-it/eauf/internal/model"
)

// ErrNotFound is returned when a requested confession does not exist.
var ErrNotFound = errors.New("storage: confession not found")

// ConfessionStore persists confessions.
type ConfessionStore struct {
	db *sqlx.DB
}

// NewConfessionStore wraps a connected pool.
func NewConfessionStore(db *sqlx.DB) *ConfessionStore {
	return &ConfessionStore{db: db}
}

// Insert stores a new confession and returns its assigned id.
func (s *ConfessionStore) Insert(ctx context.Context, text string, authorID, ts int64) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		`INSERT INTO confessions (text, timestamp, author_id) VALUES ($1, $2, $3) RETURNING id`,
		text, ts, authorID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert confession: %w", err)
	}
	return id, nil
}

// SetChannelMessageID records the channel message id for a published
// confession. The guard keeps the transition one-way: once set, the
// value never changes.
func (s *ConfessionStore) SetChannelMessageID(ctx context.Context, id, messageID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE confessions SET channel_message_id = $1 WHERE id = $2 AND channel_message_id IS NULL`,
		messageID, id,
	)
	if err != nil {
		return fmt.Errorf("set channel message id: %w", err)
	}
	return nil
}

// Get loads a confession by id, returning ErrNotFound when absent.
func (s *ConfessionStore) Get(ctx context.Context, id int64) (*model.Confession, error) {
	var conf model.Confession
	err := s.db.GetContext(ctx, &conf,
		`SELECT id, text, timestamp, channel_message_id, author_id FROM confessions WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get confession: %w", err)
	}
	return &conf, nil
}
