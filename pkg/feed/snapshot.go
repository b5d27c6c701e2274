package feed

import (
	"sync"
	"time"
)

// Snapshot is the last list a feed delivered. It is safe for concurrent use
// and hands out copies.
type Snapshot[T any] struct {
	mu        sync.RWMutex
	items     []T
	ready     bool
	updatedAt time.Time
}

func NewSnapshot[T any]() *Snapshot[T] {
	return &Snapshot[T]{}
}

// Set is a Listener.
func (s *Snapshot[T]) Set(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = cp
	s.ready = true
	s.updatedAt = time.Now()
}

func (s *Snapshot[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]T, len(s.items))
	copy(cp, s.items)
	return cp
}

// Ready reports whether at least one list has been delivered.
func (s *Snapshot[T]) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Snapshot[T]) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
