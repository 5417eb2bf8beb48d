package telegram

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/yeabjr51-ship-it/eauf/internal/logger"
)

const contextKey = "logger_ctx"

// storeContext attaches a reusable context to tele.Context for
// downstream calls within the same update.
func storeContext(c tele.Context, ctx context.Context) {
	if c == nil || ctx == nil {
		return
	}
	c.Set(contextKey, ctx)
}

func contextFrom(c tele.Context) (context.Context, bool) {
	if c == nil {
		return nil, false
	}
	if v := c.Get(contextKey); v != nil {
		if ctx, ok := v.(context.Context); ok {
			return ctx, true
		}
	}
	return nil, false
}

// buildContext constructs a context.Context from tele.Context, enriched
// with the correlation id and update metadata for consistent logging.
func buildContext(c tele.Context) context.Context {
	if cached, ok := contextFrom(c); ok {
		return cached
	}

	upd := c.Update()
	var chatID, userID int64
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		userID = user.ID
	}

	rid, _ := c.Get("rid").(string)
	if rid == "" {
		rid = logger.BuildRID(upd.ID, chatID, userID)
	}

	ctx := context.Background()
	ctx = logger.WithRID(ctx, rid)
	ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
	ctx = logger.WithLogger(ctx, logger.Component("tg"))
	storeContext(c, ctx)
	return ctx
}
