package auth

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Ensure MemorySessionStore implements SessionStore
var _ SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore keeps sessions in process. Used when no Redis URL is
// configured; sessions do not survive a restart.
type MemorySessionStore struct {
	cache *expirable.LRU[string, Session]
	now   func() time.Time
}

// NewMemorySessionStore holds at most size sessions, each for at most ttl.
// When full, the least recently used session is signed out.
func NewMemorySessionStore(size int, ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		cache: expirable.NewLRU[string, Session](size, nil, ttl),
		now:   time.Now,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session *Session) error {
	s.cache.Add(session.ID, *session)
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	session, ok := s.cache.Get(id)
	if !ok || session.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.cache.Remove(id)
	return nil
}

func (s *MemorySessionStore) Close() error {
	s.cache.Purge()
	return nil
}

// Len returns the number of sessions held, including ones not yet purged.
func (s *MemorySessionStore) Len() int {
	return s.cache.Len()
}
