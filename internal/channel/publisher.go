// Package channel posts confessions to the public channel and keeps the
// action keyboard of published posts in sync with the stored comment
// count. Keyboard refreshes are decoration: failures are logged and
// swallowed, never surfaced.
package channel

import (
	"context"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/yeabjr51-ship-it/eauf/internal/logger"
	"github.com/yeabjr51-ship-it/eauf/internal/model"
	"github.com/yeabjr51-ship-it/eauf/internal/render"
)

// API is the slice of the Telegram client the publisher needs.
// *tele.Bot satisfies it.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	EditReplyMarkup(msg tele.Editable, markup *tele.ReplyMarkup) (*tele.Message, error)
}

type confessionSource interface {
	Get(ctx context.Context, id int64) (*model.Confession, error)
}

type commentCounter interface {
	Count(ctx context.Context, confessionID int64) (int, error)
}

// Publisher owns all channel-side writes.
type Publisher struct {
	api         API
	chatID      int64
	render      *render.Renderer
	confessions confessionSource
	comments    commentCounter
}

// New builds a Publisher. A zero chatID means no channel is configured
// and every channel operation turns into a no-op.
func New(api API, chatID int64, r *render.Renderer, confessions confessionSource, comments commentCounter) *Publisher {
	return &Publisher{
		api:         api,
		chatID:      chatID,
		render:      r,
		confessions: confessions,
		comments:    comments,
	}
}

// Configured reports whether a public channel is set up.
func (p *Publisher) Configured() bool {
	return p.chatID != 0
}

// Publish posts a fresh confession with a zero-count keyboard and
// returns the channel message id. Unlike keyboard refreshes, a publish
// failure is user-visible and must be reported by the caller.
func (p *Publisher) Publish(ctx context.Context, confessionID int64, text string) (int64, error) {
	msg, err := p.api.Send(
		tele.ChatID(p.chatID),
		p.render.ChannelPost(confessionID, text),
		p.render.ChannelKeyboard(confessionID, 0),
		tele.ModeHTML,
	)
	if err != nil {
		logger.Error(ctx, "tg", "channel.publish.fail",
			slog.Int64("confession_id", confessionID),
			slog.String("err", err.Error()),
		)
		return 0, err
	}
	return int64(msg.ID), nil
}

// RefreshKeyboard recomputes the comment count and re-renders only the
// reply markup of an already-published post. Safe to call repeatedly;
// with no intervening insert the rendered keyboard is identical.
func (p *Publisher) RefreshKeyboard(ctx context.Context, confessionID int64) {
	if !p.Configured() {
		return
	}
	conf, err := p.confessions.Get(ctx, confessionID)
	if err != nil {
		logger.Debug(ctx, "tg", "channel.sync.skip",
			slog.Int64("confession_id", confessionID),
			slog.String("err", err.Error()),
		)
		return
	}
	if !conf.Published() {
		return
	}

	count, err := p.comments.Count(ctx, confessionID)
	if err != nil {
		logger.Debug(ctx, "tg", "channel.sync.skip",
			slog.Int64("confession_id", confessionID),
			slog.String("err", err.Error()),
		)
		return
	}

	stored := tele.StoredMessage{
		ChatID:    p.chatID,
		MessageID: strconv.FormatInt(*conf.ChannelMessageID, 10),
	}
	if _, err := p.api.EditReplyMarkup(stored, p.render.ChannelKeyboard(confessionID, count)); err != nil {
		// Best effort only: the message may no longer be editable.
		logger.Debug(ctx, "tg", "channel.sync.fail",
			slog.Int64("confession_id", confessionID),
			slog.String("err", err.Error()),
		)
	}
}
