package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yeabjr51-ship-it/eauf/internal/profanity"
	"github.com/yeabjr51-ship-it/eauf/internal/ratelimit"
	"github.com/yeabjr51-ship-it/eauf/internal/session"
)

type insertedComment struct {
	confessionID int64
	text         string
	avatar       string
}

type fakeCommentStore struct {
	nextID    int64
	insertErr error
	inserted  []insertedComment
}

func (f *fakeCommentStore) Insert(ctx context.Context, confessionID int64, text, avatar string, ts int64) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, insertedComment{confessionID: confessionID, text: text, avatar: avatar})
	f.nextID++
	return f.nextID, nil
}

type fakeSyncer struct {
	refreshed []int64
}

func (f *fakeSyncer) RefreshKeyboard(ctx context.Context, confessionID int64) {
	f.refreshed = append(f.refreshed, confessionID)
}

func newCommentsPipeline(words []string) (*Comments, *fakeCommentStore, *session.Store, *fakeSyncer, *time.Time) {
	now := time.Unix(1000, 0)
	store := &fakeCommentStore{}
	sessions := session.NewStore()
	syncer := &fakeSyncer{}
	limiter := ratelimit.New(map[ratelimit.Kind]time.Duration{
		ratelimit.KindComment: 10 * time.Second,
	}, ratelimit.WithClock(func() time.Time { return now }))
	svc := NewComments(store, sessions, limiter, profanity.New(words), syncer)
	svc.pick = func(n int) int { return 0 }
	svc.now = func() time.Time { return now }
	return svc, store, sessions, syncer, &now
}

func TestSubmitCommentHappyPath(t *testing.T) {
	svc, store, sessions, syncer, _ := newCommentsPipeline(nil)
	sessions.Begin(42, 7)

	res, err := svc.Submit(context.Background(), 42, "nice post")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Status != CommentAdded || res.ID != 1 || res.ConfessionID != 7 {
		t.Fatalf("result = %+v, want added comment 1 on confession 7", res)
	}
	if store.inserted[0].confessionID != 7 || store.inserted[0].text != "nice post" {
		t.Fatalf("stored = %+v", store.inserted[0])
	}
	if store.inserted[0].avatar != DefaultAvatars[0] {
		t.Fatalf("avatar = %q, want %q", store.inserted[0].avatar, DefaultAvatars[0])
	}
	if len(syncer.refreshed) != 1 || syncer.refreshed[0] != 7 {
		t.Fatalf("refreshed = %v, want [7]", syncer.refreshed)
	}
	if sessions.Active(42) {
		t.Fatal("session must be consumed on success")
	}
}

func TestSubmitCommentWithoutSession(t *testing.T) {
	svc, store, _, _, _ := newCommentsPipeline(nil)

	res, err := svc.Submit(context.Background(), 42, "hello")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Status != CommentSessionExpired {
		t.Fatalf("status = %v, want session-expired", res.Status)
	}
	if len(store.inserted) != 0 {
		t.Fatal("nothing must persist without a session")
	}
}

func TestSubmitCommentRateLimitedConsumesSession(t *testing.T) {
	svc, _, sessions, _, now := newCommentsPipeline(nil)
	sessions.Begin(42, 7)
	if res, _ := svc.Submit(context.Background(), 42, "first"); res.Status != CommentAdded {
		t.Fatalf("setup submit = %+v", res)
	}

	*now = now.Add(3 * time.Second)
	sessions.Begin(42, 7)
	res, err := svc.Submit(context.Background(), 42, "second")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Status != CommentRateLimited || res.RetryAfter != 7 {
		t.Fatalf("result = %+v, want rate-limited retry 7s", res)
	}
	if sessions.Active(42) {
		t.Fatal("a denied attempt still consumes the session")
	}
}

func TestSubmitCommentEmptyCancels(t *testing.T) {
	svc, store, sessions, _, _ := newCommentsPipeline(nil)
	sessions.Begin(42, 7)

	res, err := svc.Submit(context.Background(), 42, "   ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Status != CommentCanceled {
		t.Fatalf("status = %v, want canceled", res.Status)
	}
	if len(store.inserted) != 0 || sessions.Active(42) {
		t.Fatal("canceled attempt must persist nothing and clear the session")
	}
}

func TestSubmitCommentProfanity(t *testing.T) {
	svc, store, sessions, syncer, _ := newCommentsPipeline([]string{"spam"})
	sessions.Begin(42, 7)

	res, err := svc.Submit(context.Background(), 42, "SPAM here")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Status != CommentRejected {
		t.Fatalf("status = %v, want rejected", res.Status)
	}
	if len(store.inserted) != 0 || len(syncer.refreshed) != 0 {
		t.Fatal("rejected comment must not persist or trigger a sync")
	}
}

func TestSubmitCommentStoreError(t *testing.T) {
	svc, store, sessions, syncer, _ := newCommentsPipeline(nil)
	sessions.Begin(42, 7)
	store.insertErr = errors.New("db down")

	if _, err := svc.Submit(context.Background(), 42, "hello"); err == nil {
		t.Fatal("store errors must propagate")
	}
	if len(syncer.refreshed) != 0 {
		t.Fatal("no sync on failed insert")
	}
}
