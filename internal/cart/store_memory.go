package cart

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore is the in-process Store used by the local build.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
	locks   map[string]time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
		locks:   make(map[string]time.Time),
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.entries, id)
		return nil, ErrCartNotFound
	}

	e.expiresAt = now.Add(s.ttl)
	s.entries[id] = e

	sess := e.session
	sess.Lines = append([]Line(nil), e.session.Lines...)
	return &sess, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	cp.Lines = append([]Line(nil), sess.Lines...)
	s.entries[sess.ID] = memoryEntry{session: cp, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Lock(ctx context.Context, id string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, ok := s.locks[id]; ok && now.Before(until) {
		return nil, ErrCheckoutInProgress
	}
	token := now.Add(lockTTL)
	s.locks[id] = token

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.locks[id].Equal(token) {
			delete(s.locks, id)
		}
	}, nil
}
