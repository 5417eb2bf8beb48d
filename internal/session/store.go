// Package session keeps the ephemeral per-user "awaiting comment" state
// between an add-comment deep link and the user's next message. State
// lives in process memory only and does not survive restarts.
package session

import "sync"

// Store maps a user id to the confession awaiting their comment. All
// operations are single locked steps so two rapid messages from the same
// user cannot race a read-modify-write.
type Store struct {
	mu      sync.Mutex
	pending map[int64]int64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{pending: make(map[int64]int64)}
}

// Begin marks the user as awaiting a comment for the given confession,
// replacing any previous pending target.
func (s *Store) Begin(userID, confessionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = confessionID
}

// Take consumes the user's pending session in one atomic step. A session
// survives exactly one submission attempt; the caller gets the target
// confession id and the store forgets the user regardless of what the
// attempt ends up doing.
func (s *Store) Take(userID int64) (confessionID int64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.pending[userID]
	if ok {
		delete(s.pending, userID)
	}
	return id, ok
}

// Active reports whether the user has a pending comment session.
func (s *Store) Active(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[userID]
	return ok
}

// Clear drops the user's pending session if any.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
}
