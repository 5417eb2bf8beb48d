package service

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/yeabjr51-ship-it/eauf/internal/model"
	"github.com/yeabjr51-ship-it/eauf/internal/render"
)

type confessionGetter interface {
	Get(ctx context.Context, id int64) (*model.Confession, error)
}

type commentLister interface {
	Count(ctx context.Context, confessionID int64) (int, error)
	ListPage(ctx context.Context, confessionID int64, limit, offset int) ([]model.Comment, error)
}

// RenderedPage is a ready-to-deliver comment page.
type RenderedPage struct {
	Body     string
	Keyboard *tele.ReplyMarkup
	Page     int
	Total    int
}

// Pages reads and renders paginated comment views.
type Pages struct {
	confessions confessionGetter
	comments    commentLister
	render      *render.Renderer
}

// NewPages wires the pagination reader.
func NewPages(confessions confessionGetter, comments commentLister, r *render.Renderer) *Pages {
	return &Pages{confessions: confessions, comments: comments, render: r}
}

// Render builds the comment page for a confession, clamping out-of-range
// page requests instead of rejecting them. storage.ErrNotFound passes
// through when the confession does not exist.
func (p *Pages) Render(ctx context.Context, confessionID int64, requested int) (*RenderedPage, error) {
	conf, err := p.confessions.Get(ctx, confessionID)
	if err != nil {
		return nil, err
	}

	total, err := p.comments.Count(ctx, confessionID)
	if err != nil {
		return nil, err
	}

	size := p.render.PageSize()
	totalPages := render.TotalPages(total, size)
	page := render.ClampPage(requested, totalPages)

	comments, err := p.comments.ListPage(ctx, confessionID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	body := p.render.CommentsBody(render.Page{
		ConfessionID:   conf.ID,
		ConfessionText: conf.Text,
		Number:         page,
		Total:          totalPages,
		Comments:       comments,
	})
	return &RenderedPage{
		Body:     body,
		Keyboard: p.render.CommentsKeyboard(confessionID, page, totalPages),
		Page:     page,
		Total:    totalPages,
	}, nil
}
