package session

import (
	"context"
	"sync"
	"time"

	"github.com/hros/ess-gateway/internal/entity"
)

// MemoryStore keeps sessions in a mutex-guarded map. Good for tests and
// single-node deployments without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	sess      entity.Session
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, tokenID string, sess entity.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[tokenID] = memoryEntry{
		sess:      sess,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, tokenID string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[tokenID]
	if !ok {
		return nil, ErrNotFound
	}

	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, tokenID)
		return nil, ErrNotFound
	}

	sess := entry.sess
	return &sess, nil
}

func (s *MemoryStore) Destroy(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, tokenID)
	return nil
}
