package telegram

import (
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/yeabjr51-ship-it/eauf/internal/deeplink"
	"github.com/yeabjr51-ship-it/eauf/internal/logger"
	"github.com/yeabjr51-ship-it/eauf/internal/service"
	"github.com/yeabjr51-ship-it/eauf/internal/session"
	"github.com/yeabjr51-ship-it/eauf/internal/storage"
)

// Bot binds update handlers to the submission pipelines and the
// pagination reader.
type Bot struct {
	confessions *service.Confessions
	comments    *service.Comments
	pages       *service.Pages
	sessions    *session.Store

	confessionName string
	channelLink    string
}

// NewBot wires the handler set.
func NewBot(confessions *service.Confessions, comments *service.Comments, pages *service.Pages, sessions *session.Store, confessionName, channelLink string) *Bot {
	return &Bot{
		confessions:    confessions,
		comments:       comments,
		pages:          pages,
		sessions:       sessions,
		confessionName: confessionName,
		channelLink:    channelLink,
	}
}

// topMenu is the persistent reply keyboard shown on /start.
func topMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnConfess)),
		menu.Row(menu.Text(btnBrowse)),
	)
	return menu
}

// onStart greets the user and dispatches the deep-link payload, if any.
// Malformed payloads act like a plain /start.
func (b *Bot) onStart(c tele.Context) error {
	if err := c.Send(welcomeText(b.confessionName), topMenu()); err != nil {
		return err
	}

	msg := c.Message()
	if msg == nil || msg.Payload == "" {
		return nil
	}

	link := deeplink.Route(msg.Payload)
	switch link.Intent {
	case deeplink.IntentViewComments:
		return b.sendPage(c, link.ConfessionID, 1, false)
	case deeplink.IntentAddComment:
		if err := c.Send(msgSendComment); err != nil {
			return err
		}
		b.sessions.Begin(c.Sender().ID, link.ConfessionID)
		logger.Debug(buildContext(c), "tg", "session.begin",
			slog.Int64("user_id", c.Sender().ID),
			slog.Int64("confession_id", link.ConfessionID),
		)
	}
	return nil
}

func (b *Bot) onHelp(c tele.Context) error {
	return c.Send(msgHelp)
}

// onText routes private text messages: top-menu buttons take priority,
// then an awaiting-comment session, then the confession pipeline.
func (b *Bot) onText(c tele.Context) error {
	if chat := c.Chat(); chat == nil || chat.Type != tele.ChatPrivate {
		return nil
	}

	switch c.Text() {
	case btnConfess:
		return c.Send(msgConfessPrompt, &tele.ReplyMarkup{RemoveKeyboard: true})
	case btnBrowse:
		if err := c.Send(msgBrowsePrompt, &tele.ReplyMarkup{RemoveKeyboard: true}); err != nil {
			return err
		}
		if b.channelLink != "" {
			return c.Send(b.channelLink)
		}
		return nil
	}

	return b.submit(c, c.Text(), "")
}

// onMedia handles non-text messages in private chats; a caption stands
// in for the confession text.
func (b *Bot) onMedia(c tele.Context) error {
	if chat := c.Chat(); chat == nil || chat.Type != tele.ChatPrivate {
		return nil
	}
	var caption string
	if msg := c.Message(); msg != nil {
		caption = msg.Caption
	}
	return b.submit(c, "", caption)
}

// submit feeds the message into the comment pipeline when a session is
// pending, otherwise into the confession pipeline.
func (b *Bot) submit(c tele.Context, text, caption string) error {
	userID := c.Sender().ID
	ctx := buildContext(c)

	if b.sessions.Active(userID) {
		// Captions never stand in for a comment; a media message during
		// an open session cancels it like any other non-text input.
		res, err := b.comments.Submit(ctx, userID, text)
		if err != nil {
			return err
		}
		switch res.Status {
		case service.CommentSessionExpired:
			return c.Reply(msgSessionExpired)
		case service.CommentRateLimited:
			return c.Reply(commentWaitText(res.RetryAfter))
		case service.CommentCanceled:
			return c.Reply(msgCommentEmpty)
		case service.CommentRejected:
			return c.Reply(msgCommentBanned)
		default:
			return c.Reply(msgCommentAdded)
		}
	}

	res, err := b.confessions.Submit(ctx, userID, text, caption)
	if err != nil {
		return err
	}
	switch res.Status {
	case service.ConfessionRateLimited:
		return c.Reply(confessionWaitText(res.RetryAfter))
	case service.ConfessionEmpty:
		return c.Reply(msgConfessionEmpty)
	case service.ConfessionRejected:
		return c.Reply(msgConfessionBanned)
	case service.ConfessionPublishFailed:
		return c.Reply(msgPublishFailed)
	case service.ConfessionSavedLocally:
		if err := c.Reply(msgSavedLocally); err != nil {
			return err
		}
		return c.Reply(postedText(b.confessionName, res.ID))
	default:
		return c.Reply(postedText(b.confessionName, res.ID))
	}
}

// onPageCallback answers the button press and swaps the message to the
// requested page in place.
func (b *Bot) onPageCallback(c tele.Context) error {
	if err := c.Respond(); err != nil {
		logger.Debug(buildContext(c), "tg", "callback.respond_failed",
			slog.String("err", err.Error()),
		)
	}

	_, payload := parseCallback(c.Callback())
	nav, ok := deeplink.ParsePageNav(payload)
	if !ok {
		logger.Warn(buildContext(c), "tg", "callback.bad_payload",
			slog.String("payload", logger.SanitizeLimit(payload, 64)),
		)
		return nil
	}
	return b.sendPage(c, nav.ConfessionID, nav.Page, true)
}

// sendPage renders a comment page and delivers it, editing the pressed
// message when edit is set. Edit failures are swallowed so a stale
// press on an unchanged page stays silent.
func (b *Bot) sendPage(c tele.Context, confessionID int64, page int, edit bool) error {
	ctx := buildContext(c)
	rendered, err := b.pages.Render(ctx, confessionID, page)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Send(msgNotFound)
	}
	if err != nil {
		return err
	}

	if edit {
		if err := c.Edit(rendered.Body, rendered.Keyboard, tele.ModeHTML); err != nil {
			logger.Debug(ctx, "tg", "page.edit_failed",
				slog.Int64("confession_id", confessionID),
				slog.Int("page", rendered.Page),
				slog.String("err", err.Error()),
			)
		}
		return nil
	}
	return c.Send(rendered.Body, rendered.Keyboard, tele.ModeHTML)
}
