package cache

import (
	"context"
	"sync"
	"time"
)

// Slot is a single-entry in-process response cache. It holds at most one
// response at a time; storing under a new key evicts the previous entry.
// Safe for concurrent use.
type Slot struct {
	mu       sync.Mutex
	key      string
	value    []byte
	storedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewSlot creates a single-slot cache with the given window
func NewSlot(ttl time.Duration) *Slot {
	return &Slot{
		ttl: ttl,
		now: time.Now,
	}
}

// NewSlotWithClock creates a single-slot cache with an injected clock
func NewSlotWithClock(ttl time.Duration, now func() time.Time) *Slot {
	return &Slot{
		ttl: ttl,
		now: now,
	}
}

// Get returns the cached response if the key matches and the window has
// not elapsed
func (s *Slot) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.value == nil || s.key != key {
		return nil, false
	}
	if s.now().Sub(s.storedAt) >= s.ttl {
		return nil, false
	}
	return s.value, true
}

// Set stores a response, replacing whatever the slot held before
func (s *Slot) Set(_ context.Context, key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = key
	s.value = value
	s.storedAt = s.now()
}

// Clear empties the slot
func (s *Slot) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = ""
	s.value = nil
}
