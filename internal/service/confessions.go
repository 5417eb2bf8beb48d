// Package service orchestrates the submission pipelines: rate gate,
// input normalization, word filter, persistence, and channel publishing.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yeabjr51-ship-it/eauf/internal/logger"
	"github.com/yeabjr51-ship-it/eauf/internal/profanity"
	"github.com/yeabjr51-ship-it/eauf/internal/ratelimit"
)

// ConfessionStatus classifies the outcome of a confession submission.
type ConfessionStatus int

const (
	// ConfessionPosted means stored and published to the channel.
	ConfessionPosted ConfessionStatus = iota
	// ConfessionSavedLocally means stored with no channel configured.
	ConfessionSavedLocally
	// ConfessionRateLimited means the cooldown window has not elapsed.
	ConfessionRateLimited
	// ConfessionEmpty means the normalized text was empty.
	ConfessionEmpty
	// ConfessionRejected means the text contains banned words.
	ConfessionRejected
	// ConfessionPublishFailed means the confession is stored but the
	// channel post failed; the cooldown is intentionally not recorded so
	// the user may retry at once.
	ConfessionPublishFailed
)

// ConfessionResult reports what a submission attempt did.
type ConfessionResult struct {
	Status     ConfessionStatus
	ID         int64
	RetryAfter int64
}

type confessionStore interface {
	Insert(ctx context.Context, text string, authorID, ts int64) (int64, error)
	SetChannelMessageID(ctx context.Context, id, messageID int64) error
}

type channelPublisher interface {
	Configured() bool
	Publish(ctx context.Context, confessionID int64, text string) (int64, error)
}

// Confessions is the confession submission pipeline.
type Confessions struct {
	store     confessionStore
	limiter   *ratelimit.Limiter
	filter    *profanity.Filter
	publisher channelPublisher
	now       func() time.Time
}

// NewConfessions wires the pipeline.
func NewConfessions(store confessionStore, limiter *ratelimit.Limiter, filter *profanity.Filter, publisher channelPublisher) *Confessions {
	return &Confessions{
		store:     store,
		limiter:   limiter,
		filter:    filter,
		publisher: publisher,
		now:       time.Now,
	}
}

// Submit runs one confession attempt for the user. caption is the
// fallback text used when the primary text is absent, e.g. a photo
// message with a caption. Errors are reserved for store faults; every
// expected rejection arrives as a result status.
func (s *Confessions) Submit(ctx context.Context, userID int64, text, caption string) (ConfessionResult, error) {
	if wait, ok := s.limiter.Allow(userID, ratelimit.KindConfession); !ok {
		logger.Debug(ctx, "service.confessions", "submit.rate_limited",
			slog.Int64("retry_after_s", wait),
		)
		return ConfessionResult{Status: ConfessionRateLimited, RetryAfter: wait}, nil
	}

	body := strings.TrimSpace(text)
	if body == "" {
		body = strings.TrimSpace(caption)
	}
	if body == "" {
		s.limiter.Release(userID, ratelimit.KindConfession)
		return ConfessionResult{Status: ConfessionEmpty}, nil
	}
	if s.filter.ContainsBanned(body) {
		s.limiter.Release(userID, ratelimit.KindConfession)
		logger.Debug(ctx, "service.confessions", "submit.rejected")
		return ConfessionResult{Status: ConfessionRejected}, nil
	}

	id, err := s.store.Insert(ctx, body, userID, s.now().Unix())
	if err != nil {
		s.limiter.Release(userID, ratelimit.KindConfession)
		return ConfessionResult{}, err
	}

	if !s.publisher.Configured() {
		s.limiter.Record(userID, ratelimit.KindConfession)
		logger.Info(ctx, "service.confessions", "submit.saved_locally",
			slog.Int64("confession_id", id),
		)
		return ConfessionResult{Status: ConfessionSavedLocally, ID: id}, nil
	}

	messageID, err := s.publisher.Publish(ctx, id, body)
	if err != nil {
		// The row stays without a channel message id and the cooldown is
		// not recorded, matching the submission being voided for the user.
		s.limiter.Release(userID, ratelimit.KindConfession)
		logger.Warn(ctx, "service.confessions", "submit.publish_failed",
			slog.Int64("confession_id", id),
			slog.String("err", err.Error()),
		)
		return ConfessionResult{Status: ConfessionPublishFailed, ID: id}, nil
	}
	if err := s.store.SetChannelMessageID(ctx, id, messageID); err != nil {
		// The post is already out; losing the back reference only disables
		// future keyboard refreshes for this confession.
		logger.Warn(ctx, "service.confessions", "submit.link_failed",
			slog.Int64("confession_id", id),
			slog.String("err", err.Error()),
		)
	}

	s.limiter.Record(userID, ratelimit.KindConfession)
	logger.Info(ctx, "service.confessions", "submit.posted",
		slog.Int64("confession_id", id),
		slog.Int64("channel_message_id", messageID),
	)
	return ConfessionResult{Status: ConfessionPosted, ID: id}, nil
}
