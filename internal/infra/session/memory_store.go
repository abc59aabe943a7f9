package session

import (
	"context"
	"sync"
	"time"

	"ladx/internal/domain/service"

	"github.com/google/uuid"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

type memorySignup struct {
	signup    service.PendingSignup
	expiresAt time.Time
}

// memoryStore is an in-process SessionStore for development and tests.
// Expired entries are dropped lazily on read.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]memoryEntry
	signups  map[uuid.UUID]memorySignup
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() service.SessionStore {
	return &memoryStore{
		sessions: make(map[uuid.UUID]memoryEntry),
		signups:  make(map[uuid.UUID]memorySignup),
	}
}

func (s *memoryStore) SaveSession(_ context.Context, principalID uuid.UUID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[principalID] = memoryEntry{token: token, expiresAt: time.Now().Add(ttl)}

	return nil
}

func (s *memoryStore) GetSession(_ context.Context, principalID uuid.UUID) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[principalID]
	s.mu.RUnlock()

	if !ok {
		return "", service.ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, principalID)
		s.mu.Unlock()

		return "", service.ErrSessionNotFound
	}

	return entry.token, nil
}

func (s *memoryStore) DeleteSession(_ context.Context, principalID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, principalID)

	return nil
}

func (s *memoryStore) SavePendingSignup(_ context.Context, signup *service.PendingSignup, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.signups[signup.TempID] = memorySignup{signup: *signup, expiresAt: time.Now().Add(ttl)}

	return nil
}

func (s *memoryStore) GetPendingSignup(_ context.Context, tempID uuid.UUID) (*service.PendingSignup, error) {
	s.mu.RLock()
	entry, ok := s.signups[tempID]
	s.mu.RUnlock()

	if !ok {
		return nil, service.ErrPendingSignupNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.signups, tempID)
		s.mu.Unlock()

		return nil, service.ErrPendingSignupNotFound
	}

	signup := entry.signup

	return &signup, nil
}

func (s *memoryStore) DeletePendingSignup(_ context.Context, tempID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.signups, tempID)

	return nil
}
