package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Registry maps browser session ids to their managers.
type Registry struct {
	store    Store
	verifier Verifier
	logger   zerolog.Logger
	options  []Option

	mu       sync.Mutex
	managers map[string]*Manager
}

// NewRegistry builds an empty registry. opts are applied to every manager it creates.
func NewRegistry(store Store, verifier Verifier, logger zerolog.Logger, opts ...Option) *Registry {
	return &Registry{
		store:    store,
		verifier: verifier,
		logger:   logger,
		options:  opts,
		managers: make(map[string]*Manager),
	}
}

// Get returns the manager of sessionID, creating and initializing it on first
// use. When the store cannot be read the returned manager holds no session and
// is not retained, so the next request retries the load.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Manager, error) {
	r.mu.Lock()
	manager, ok := r.managers[sessionID]
	if !ok {
		manager = NewManager(sessionID, r.store, r.verifier, r.logger, r.options...)
		r.managers[sessionID] = manager
	}
	r.mu.Unlock()

	manager.Touch()
	if err := manager.ensureInitialized(ctx); err != nil {
		r.mu.Lock()
		if r.managers[sessionID] == manager {
			delete(r.managers, sessionID)
		}
		r.mu.Unlock()
		return manager, err
	}
	return manager, nil
}

// Peek returns an already known manager without creating one.
func (r *Registry) Peek(sessionID string) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	manager, ok := r.managers[sessionID]
	return manager, ok
}

// Forget drops the in-memory manager. Durable entries are left untouched.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	delete(r.managers, sessionID)
	r.mu.Unlock()
}

// Prune forgets managers idle for longer than idle and returns how many were dropped.
func (r *Registry) Prune(idle time.Duration, now time.Time) int {
	cutoff := now.Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0
	for id, manager := range r.managers {
		if manager.LastSeen().Before(cutoff) {
			delete(r.managers, id)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of managers held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}
