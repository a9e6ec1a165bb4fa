package state

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mmynk/motoledger/internal/metrics"
	"github.com/mmynk/motoledger/internal/storage"
)

// Registry holds one workspace per session. Entries expire after ttl, like
// the sessions they belong to, and the least recently used is dropped when
// size is reached.
type Registry struct {
	mu    sync.Mutex
	store storage.Store
	cache *expirable.LRU[string, *Workspace]
}

// NewRegistry creates a registry whose workspaces share store.
func NewRegistry(store storage.Store, size int, ttl time.Duration) *Registry {
	onEvict := func(string, *Workspace) {
		metrics.WorkspacesActive.Dec()
	}
	return &Registry{
		store: store,
		cache: expirable.NewLRU[string, *Workspace](size, onEvict, ttl),
	}
}

// Get returns the session's workspace, creating and loading it on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ws, ok := r.cache.Get(sessionID); ok {
		return ws, nil
	}

	ws := NewWorkspace(r.store)
	if err := ws.Load(ctx); err != nil {
		return nil, err
	}
	r.cache.Add(sessionID, ws)
	metrics.WorkspacesActive.Inc()
	return ws, nil
}

// Drop forgets the session's workspace. Used on sign-out.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Remove(sessionID)
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	return r.cache.Len()
}
