// Package ratelimit implements the per-user cooldown gate applied to
// confession and comment submissions.
package ratelimit

import (
	"sync"
	"time"
)

// Kind identifies the rated action.
type Kind string

const (
	// KindConfession rates anonymous confession submissions.
	KindConfession Kind = "confession"
	// KindComment rates comment submissions.
	KindComment Kind = "comment"
)

// Limiter tracks the last accepted action per user and kind. Allow,
// Record, and Release form a reservation: Allow admits at most one
// in-flight attempt per user and kind, Record commits it and starts the
// cooldown, Release rolls it back. The cooldown timestamp moves only on
// Record, so rejections (empty text, banned words, failed publish) do
// not restart the user's cooldown.
type Limiter struct {
	mu       sync.Mutex
	windows  map[Kind]time.Duration
	last     map[Kind]map[int64]time.Time
	inflight map[Kind]map[int64]struct{}
	now      func() time.Time
}

// Option customises a Limiter.
type Option func(*Limiter)

// WithClock replaces the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New builds a Limiter with the given cooldown window per action kind.
// A zero or negative window disables limiting for that kind.
func New(windows map[Kind]time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		windows:  make(map[Kind]time.Duration, len(windows)),
		last:     make(map[Kind]map[int64]time.Time, len(windows)),
		inflight: make(map[Kind]map[int64]struct{}, len(windows)),
		now:      time.Now,
	}
	for kind, w := range windows {
		l.windows[kind] = w
		l.last[kind] = make(map[int64]time.Time)
		l.inflight[kind] = make(map[int64]struct{})
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether the user may perform the action now and, when
// allowed, reserves the attempt: a second call before the matching
// Record or Release is denied, so concurrent submissions cannot both
// pass on the same stale cooldown read. When denied it returns the
// remaining wait in whole seconds, rounded up and never negative.
func (l *Limiter) Allow(userID int64, kind Kind) (retryAfter int64, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	window := l.windows[kind]
	if window <= 0 {
		return 0, true
	}
	if _, busy := l.inflight[kind][userID]; busy {
		return l.remainingLocked(userID, kind, window), false
	}
	last, seen := l.last[kind][userID]
	if seen && l.now().Sub(last) < window {
		return l.remainingLocked(userID, kind, window), false
	}
	l.inflight[kind][userID] = struct{}{}
	return 0, true
}

// remainingLocked computes the ceil-seconds wait hint for a denial. An
// in-flight attempt with no committed cooldown yet reports the full
// window. Callers hold l.mu.
func (l *Limiter) remainingLocked(userID int64, kind Kind, window time.Duration) int64 {
	remaining := window
	if last, seen := l.last[kind][userID]; seen {
		if r := window - l.now().Sub(last); r < remaining {
			remaining = r
		}
	}
	secs := int64((remaining + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return secs
}

// Record commits the reserved attempt and stores the cooldown start.
// Callers must invoke it exactly once per accepted submission.
func (l *Limiter) Record(userID int64, kind Kind) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bucket, seen := l.inflight[kind]; seen {
		delete(bucket, userID)
	}

	bucket, seen := l.last[kind]
	if !seen {
		bucket = make(map[int64]time.Time)
		l.last[kind] = bucket
	}
	now := l.now()
	if prev, ok := bucket[userID]; ok && prev.After(now) {
		// Keep timestamps monotonically non-decreasing per user.
		return
	}
	bucket[userID] = now
}

// Release rolls back a reserved attempt without starting the cooldown,
// used when the submission is rejected after passing the gate.
func (l *Limiter) Release(userID int64, kind Kind) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bucket, seen := l.inflight[kind]; seen {
		delete(bucket, userID)
	}
}
