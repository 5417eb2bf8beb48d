package channel

import (
	"context"
	"errors"
	"reflect"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/yeabjr51-ship-it/eauf/internal/model"
	"github.com/yeabjr51-ship-it/eauf/internal/render"
)

type fakeAPI struct {
	sendErr error
	editErr error

	sent    []string
	markups []*tele.ReplyMarkup
	nextID  int
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, what.(string))
	f.nextID++
	return &tele.Message{ID: f.nextID + 554}, nil
}

func (f *fakeAPI) EditReplyMarkup(msg tele.Editable, markup *tele.ReplyMarkup) (*tele.Message, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.markups = append(f.markups, markup)
	return &tele.Message{}, nil
}

type fakeConfessions struct {
	conf *model.Confession
	err  error
}

func (f *fakeConfessions) Get(ctx context.Context, id int64) (*model.Confession, error) {
	return f.conf, f.err
}

type fakeComments struct {
	count int
	err   error
}

func (f *fakeComments) Count(ctx context.Context, confessionID int64) (int, error) {
	return f.count, f.err
}

func published(id, msgID int64) *model.Confession {
	return &model.Confession{ID: id, Text: "hi", ChannelMessageID: &msgID}
}

func TestPublishReturnsMessageID(t *testing.T) {
	api := &fakeAPI{}
	p := New(api, -100123, render.New("EAU Confession", "eaubot", 4), &fakeConfessions{}, &fakeComments{})

	msgID, err := p.Publish(context.Background(), 2, "hi")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if msgID != 555 {
		t.Fatalf("message id = %d, want 555", msgID)
	}
	if len(api.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(api.sent))
	}
}

func TestPublishError(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("forbidden")}
	p := New(api, -100123, render.New("EAU Confession", "eaubot", 4), &fakeConfessions{}, &fakeComments{})

	if _, err := p.Publish(context.Background(), 2, "hi"); err == nil {
		t.Fatal("expected publish error to propagate")
	}
}

func TestRefreshKeyboardIdempotent(t *testing.T) {
	api := &fakeAPI{}
	p := New(api, -100123, render.New("EAU Confession", "eaubot", 4),
		&fakeConfessions{conf: published(3, 555)}, &fakeComments{count: 5})

	p.RefreshKeyboard(context.Background(), 3)
	p.RefreshKeyboard(context.Background(), 3)

	if len(api.markups) != 2 {
		t.Fatalf("edits = %d, want 2", len(api.markups))
	}
	if !reflect.DeepEqual(api.markups[0], api.markups[1]) {
		t.Fatal("back-to-back refreshes must render identical keyboards")
	}
}

func TestRefreshKeyboardNoChannel(t *testing.T) {
	api := &fakeAPI{}
	p := New(api, 0, render.New("EAU Confession", "eaubot", 4),
		&fakeConfessions{conf: published(3, 555)}, &fakeComments{count: 1})

	p.RefreshKeyboard(context.Background(), 3)
	if len(api.markups) != 0 {
		t.Fatal("unconfigured channel must be a no-op")
	}
}

func TestRefreshKeyboardUnpublishedConfession(t *testing.T) {
	api := &fakeAPI{}
	p := New(api, -100123, render.New("EAU Confession", "eaubot", 4),
		&fakeConfessions{conf: &model.Confession{ID: 3, Text: "hi"}}, &fakeComments{count: 1})

	p.RefreshKeyboard(context.Background(), 3)
	if len(api.markups) != 0 {
		t.Fatal("confession without a channel message id must be a no-op")
	}
}

func TestRefreshKeyboardSwallowsEditError(t *testing.T) {
	api := &fakeAPI{editErr: errors.New("message is not modified")}
	p := New(api, -100123, render.New("EAU Confession", "eaubot", 4),
		&fakeConfessions{conf: published(3, 555)}, &fakeComments{count: 1})

	// Must not panic or surface the error in any way.
	p.RefreshKeyboard(context.Background(), 3)
}
