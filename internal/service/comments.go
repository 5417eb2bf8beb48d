package service

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/yeabjr51-ship-it/eauf/internal/logger"
	"github.com/yeabjr51-ship-it/eauf/internal/profanity"
	"github.com/yeabjr51-ship-it/eauf/internal/ratelimit"
	"github.com/yeabjr51-ship-it/eauf/internal/session"
)

// DefaultAvatars is the glyph pool a comment avatar is drawn from.
var DefaultAvatars = []string{
	"🗿", "👤", "👽", "🤖", "👻", "🦊", "🐼", "🐵", "🐥", "🦄", "😺", "😎", "🫥", "🪄", "🧋",
}

// CommentStatus classifies the outcome of a comment submission.
type CommentStatus int

const (
	// CommentAdded means stored; the channel keyboard refresh ran best-effort.
	CommentAdded CommentStatus = iota
	// CommentRateLimited means the cooldown window has not elapsed.
	CommentRateLimited
	// CommentCanceled means the normalized text was empty.
	CommentCanceled
	// CommentRejected means the text contains banned words.
	CommentRejected
	// CommentSessionExpired means there was no awaiting-comment session.
	CommentSessionExpired
)

// CommentResult reports what a comment attempt did.
type CommentResult struct {
	Status       CommentStatus
	ID           int64
	ConfessionID int64
	RetryAfter   int64
}

type commentStore interface {
	Insert(ctx context.Context, confessionID int64, text, avatar string, ts int64) (int64, error)
}

type keyboardSyncer interface {
	RefreshKeyboard(ctx context.Context, confessionID int64)
}

// Comments is the comment submission pipeline.
type Comments struct {
	store    commentStore
	sessions *session.Store
	limiter  *ratelimit.Limiter
	filter   *profanity.Filter
	syncer   keyboardSyncer
	avatars  []string
	pick     func(n int) int
	now      func() time.Time
}

// NewComments wires the pipeline.
func NewComments(store commentStore, sessions *session.Store, limiter *ratelimit.Limiter, filter *profanity.Filter, syncer keyboardSyncer) *Comments {
	return &Comments{
		store:    store,
		sessions: sessions,
		limiter:  limiter,
		filter:   filter,
		syncer:   syncer,
		avatars:  DefaultAvatars,
		pick:     rand.IntN,
		now:      time.Now,
	}
}

// Submit runs one comment attempt for the user. The pending session is
// consumed up front, so a session survives exactly one attempt whether
// it succeeds or not.
func (s *Comments) Submit(ctx context.Context, userID int64, text string) (CommentResult, error) {
	confessionID, ok := s.sessions.Take(userID)
	if !ok {
		return CommentResult{Status: CommentSessionExpired}, nil
	}

	if wait, ok := s.limiter.Allow(userID, ratelimit.KindComment); !ok {
		logger.Debug(ctx, "service.comments", "submit.rate_limited",
			slog.Int64("retry_after_s", wait),
		)
		return CommentResult{Status: CommentRateLimited, RetryAfter: wait}, nil
	}

	body := strings.TrimSpace(text)
	if body == "" {
		s.limiter.Release(userID, ratelimit.KindComment)
		return CommentResult{Status: CommentCanceled}, nil
	}
	if s.filter.ContainsBanned(body) {
		s.limiter.Release(userID, ratelimit.KindComment)
		logger.Debug(ctx, "service.comments", "submit.rejected")
		return CommentResult{Status: CommentRejected}, nil
	}

	avatar := s.avatars[s.pick(len(s.avatars))]
	id, err := s.store.Insert(ctx, confessionID, body, avatar, s.now().Unix())
	if err != nil {
		s.limiter.Release(userID, ratelimit.KindComment)
		return CommentResult{}, err
	}

	s.syncer.RefreshKeyboard(ctx, confessionID)

	s.limiter.Record(userID, ratelimit.KindComment)
	logger.Info(ctx, "service.comments", "submit.added",
		slog.Int64("comment_id", id),
		slog.Int64("confession_id", confessionID),
	)
	return CommentResult{Status: CommentAdded, ID: id, ConfessionID: confessionID}, nil
}
