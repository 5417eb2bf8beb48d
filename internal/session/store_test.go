package session

import "testing"

func TestTakeConsumesSession(t *testing.T) {
	s := NewStore()
	s.Begin(42, 7)

	id, ok := s.Take(42)
	if !ok || id != 7 {
		t.Fatalf("Take = (%d, %v), want (7, true)", id, ok)
	}
	if _, ok := s.Take(42); ok {
		t.Fatal("second Take must miss: a session is single-shot")
	}
}

func TestTakeWithoutSession(t *testing.T) {
	s := NewStore()
	if _, ok := s.Take(1); ok {
		t.Fatal("Take on empty store must miss")
	}
}

func TestBeginReplacesTarget(t *testing.T) {
	s := NewStore()
	s.Begin(1, 3)
	s.Begin(1, 9)

	id, ok := s.Take(1)
	if !ok || id != 9 {
		t.Fatalf("Take = (%d, %v), want (9, true)", id, ok)
	}
}

func TestActiveAndClear(t *testing.T) {
	s := NewStore()
	if s.Active(5) {
		t.Fatal("fresh store must have no active session")
	}
	s.Begin(5, 1)
	if !s.Active(5) {
		t.Fatal("expected active session after Begin")
	}
	s.Clear(5)
	if s.Active(5) {
		t.Fatal("Clear must drop the session")
	}
}

func TestUsersIsolated(t *testing.T) {
	s := NewStore()
	s.Begin(1, 11)
	s.Begin(2, 22)

	if id, _ := s.Take(1); id != 11 {
		t.Fatalf("user 1 target = %d, want 11", id)
	}
	if id, _ := s.Take(2); id != 22 {
		t.Fatalf("user 2 target = %d, want 22", id)
	}
}
