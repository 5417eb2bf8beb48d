package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yeabjr51-ship-it/eauf/internal/model"
	"github.com/yeabjr51-ship-it/eauf/internal/render"
	"github.com/yeabjr51-ship-it/eauf/internal/storage"
)

type fakeConfessionGetter struct {
	conf *model.Confession
	err  error
}

func (f *fakeConfessionGetter) Get(ctx context.Context, id int64) (*model.Confession, error) {
	return f.conf, f.err
}

type fakeCommentLister struct {
	comments []model.Comment

	limit  int
	offset int
}

func (f *fakeCommentLister) Count(ctx context.Context, confessionID int64) (int, error) {
	return len(f.comments), nil
}

func (f *fakeCommentLister) ListPage(ctx context.Context, confessionID int64, limit, offset int) ([]model.Comment, error) {
	f.limit, f.offset = limit, offset
	end := offset + limit
	if end > len(f.comments) {
		end = len(f.comments)
	}
	if offset >= len(f.comments) {
		return nil, nil
	}
	return f.comments[offset:end], nil
}

func newPages(total int) (*Pages, *fakeCommentLister) {
	// Comments newest first, ids counting down, matching the store order.
	comments := make([]model.Comment, 0, total)
	for i := total; i >= 1; i-- {
		comments = append(comments, model.Comment{
			ID:           int64(i),
			ConfessionID: 3,
			Text:         "c",
			Avatar:       "👻",
		})
	}
	lister := &fakeCommentLister{comments: comments}
	getter := &fakeConfessionGetter{conf: &model.Confession{ID: 3, Text: "the confession"}}
	return NewPages(getter, lister, render.New("EAU Confession", "eaubot", 4)), lister
}

func TestRenderClampsOutOfRangePage(t *testing.T) {
	// 5 comments at page size 4: requesting page 5 lands on page 2,
	// which holds only the oldest comment (#1).
	pages, lister := newPages(5)

	got, err := pages.Render(context.Background(), 3, 5)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Page != 2 || got.Total != 2 {
		t.Fatalf("page = %d/%d, want 2/2", got.Page, got.Total)
	}
	if lister.offset != 4 || lister.limit != 4 {
		t.Fatalf("list window = limit %d offset %d, want 4/4", lister.limit, lister.offset)
	}
	if !strings.Contains(got.Body, "Comment #1") {
		t.Fatalf("page 2 must show the oldest comment: %q", got.Body)
	}

	// Last page: prev present, no next.
	nav := got.Keyboard.InlineKeyboard[0]
	if len(nav) != 1 || nav[0].Text != "⬅️ Prev" {
		t.Fatalf("nav = %+v, want only prev", nav)
	}
}

func TestRenderPageZeroClampsToFirst(t *testing.T) {
	pages, _ := newPages(5)

	got, err := pages.Render(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Page != 1 {
		t.Fatalf("page = %d, want 1", got.Page)
	}
	if !strings.Contains(got.Body, "page 1/2") {
		t.Fatalf("body header: %q", got.Body)
	}
}

func TestRenderEmptyThread(t *testing.T) {
	pages, _ := newPages(0)

	got, err := pages.Render(context.Background(), 3, 1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Page != 1 || got.Total != 1 {
		t.Fatalf("page = %d/%d, want 1/1", got.Page, got.Total)
	}
	if !strings.Contains(got.Body, "the confession") {
		t.Fatalf("body must include the confession text: %q", got.Body)
	}
}

func TestRenderNotFoundPassthrough(t *testing.T) {
	pages := NewPages(
		&fakeConfessionGetter{err: storage.ErrNotFound},
		&fakeCommentLister{},
		render.New("EAU Confession", "eaubot", 4),
	)

	_, err := pages.Render(context.Background(), 99, 1)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
