package session

import (
	"context"
	"sync"
	"time"
)

// Fixed keys of the two durable entries kept per browser session.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Entries is the persisted pair. Both are written together and cleared together.
type Entries struct {
	Token string
	User  []byte
}

// Complete reports whether both entries are present.
func (e Entries) Complete() bool {
	return e.Token != "" && len(e.User) > 0
}

// Store is the durable key-value namespace of one browser session.
type Store interface {
	Load(ctx context.Context, sessionID string) (Entries, error)
	Save(ctx context.Context, sessionID string, entries Entries) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps entries in process memory. It is used in tests and when no
// durable backend is configured. Abandoned sessions are only released by Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	spaces  map[string]map[string]string
	written map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		spaces:  make(map[string]map[string]string),
		written: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Load returns whatever is stored; missing keys come back empty.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (Entries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	space := s.spaces[sessionID]
	entries := Entries{Token: space[TokenKey]}
	if user, ok := space[UserKey]; ok {
		entries.User = []byte(user)
	}
	return entries, nil
}

// Save overwrites both keys.
func (s *MemoryStore) Save(_ context.Context, sessionID string, entries Entries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spaces[sessionID] = map[string]string{
		TokenKey: entries.Token,
		UserKey:  string(entries.User),
	}
	s.written[sessionID] = s.now()
	return nil
}

// Clear removes both keys.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.spaces, sessionID)
	delete(s.written, sessionID)
	return nil
}

// Sweep deletes entries not written since cutoff.
func (s *MemoryStore) Sweep(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, at := range s.written {
		if at.Before(cutoff) {
			delete(s.spaces, id)
			delete(s.written, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spaces)
}
