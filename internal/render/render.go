// Package render builds the user-facing message bodies and inline
// keyboards: the channel post with its action buttons and the paginated
// comment view. Stored text is escaped here, at render time only.
package render

import (
	"fmt"
	"html"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/yeabjr51-ship-it/eauf/internal/model"
)

const (
	// PageCallback is the callback key carried by prev/next buttons; the
	// payload is "<confession_id>:<page>".
	PageCallback = "page"

	// commentDisplayLimit caps a rendered comment; longer texts are cut
	// with a truncation marker.
	commentDisplayLimit = 250
)

// Renderer formats confessions and comment pages. The bot username goes
// into the deep-link URLs on every keyboard.
type Renderer struct {
	confessionName string
	botUsername    string
	pageSize       int
}

// New builds a Renderer. pageSize must be positive; the caller validates
// it through config normalization.
func New(confessionName, botUsername string, pageSize int) *Renderer {
	return &Renderer{
		confessionName: confessionName,
		botUsername:    botUsername,
		pageSize:       pageSize,
	}
}

// PageSize returns the configured comments-per-page constant.
func (r *Renderer) PageSize() int { return r.pageSize }

// TotalPages computes the page count for a comment total; an empty
// thread still has one (empty) page.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage clamps a requested page into [1, totalPages]; out-of-range
// requests are silently corrected, never rejected.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// ChannelPost formats the public channel message for a confession.
func (r *Renderer) ChannelPost(confessionID int64, text string) string {
	return fmt.Sprintf("👀 <b>%s #%d</b>\n\n%s\n\n#Other",
		r.confessionName, confessionID, html.EscapeString(text))
}

// ChannelKeyboard builds the action keyboard under a channel post: a
// browse button showing the current comment count and an add button,
// both deep-linking into the bot.
func (r *Renderer) ChannelKeyboard(confessionID int64, commentCount int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	browse := markup.URL(fmt.Sprintf("👀 Browse Comments (%d)", commentCount), r.viewURL(confessionID))
	add := markup.URL("➕ Add Comment", r.addURL(confessionID))
	markup.Inline(markup.Row(browse), markup.Row(add))
	return markup
}

// Page carries everything needed to render one comment page.
type Page struct {
	ConfessionID   int64
	ConfessionText string
	Number         int
	Total          int
	Comments       []model.Comment
}

// CommentsBody renders the confession header followed by the page's
// comments, newest first, each prefixed by its avatar glyph.
func (r *Renderer) CommentsBody(p Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👀 <b>%s #%d</b>\n\n%s\n\n",
		r.confessionName, p.ConfessionID, html.EscapeString(p.ConfessionText))
	fmt.Fprintf(&b, "💬 Comments (page %d/%d):\n\n", p.Number, p.Total)
	for _, c := range p.Comments {
		fmt.Fprintf(&b, "%s <b>Comment #%d</b>\n%s\n\n",
			c.Avatar, c.ID, html.EscapeString(truncate(c.Text, commentDisplayLimit)))
	}
	return b.String()
}

// CommentsKeyboard builds prev/next navigation plus the add-comment deep
// link. Prev appears only past page 1 and next only before the last page.
func (r *Renderer) CommentsKeyboard(confessionID int64, page, totalPages int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var nav []tele.Btn
	if page > 1 {
		nav = append(nav, markup.Data("⬅️ Prev", PageCallback, navPayload(confessionID, page-1)))
	}
	if page < totalPages {
		nav = append(nav, markup.Data("Next ➡️", PageCallback, navPayload(confessionID, page+1)))
	}
	add := markup.Row(markup.URL("➕ Add Comment", r.addURL(confessionID)))
	if len(nav) > 0 {
		markup.Inline(markup.Row(nav...), add)
	} else {
		markup.Inline(add)
	}
	return markup
}

func navPayload(confessionID int64, page int) string {
	return fmt.Sprintf("%d:%d", confessionID, page)
}

func (r *Renderer) viewURL(confessionID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=view_%d", r.botUsername, confessionID)
}

func (r *Renderer) addURL(confessionID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=add_%d", r.botUsername, confessionID)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
