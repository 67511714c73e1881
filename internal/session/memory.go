package session

import (
	"context"
	"sync"
	"time"
)

// memoryEntry pairs a session with its store-level deadline.
type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

// MemoryStore is an in-process Store used when no redis address is
// configured, and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}}
}

// Get returns the stored session, or nil when absent or past its deadline.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, nil
	}
	copied := entry.sess
	return &copied, nil
}

// Set stores a session under id with the given time-to-live.
func (s *MemoryStore) Set(_ context.Context, id string, sess *Session, ttl time.Duration) error {
	entry := memoryEntry{sess: *sess}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[id] = entry
	s.mu.Unlock()
	return nil
}

// Remove deletes the session under id, if any.
func (s *MemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Available always reports true for the in-process store.
func (s *MemoryStore) Available(_ context.Context) bool { return true }

// Len reports the number of live entries, for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
