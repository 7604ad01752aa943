package session

import (
	"context"
	"sync"
	"time"

	"github.com/prn-tf/wilayah/internal/domain"
)

// MemoryStore implements Store using in-memory storage.
// Sessions are lost on restart; NOT suitable for multi-node deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	stopCh   chan struct{}
	stopped  bool
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*domain.Session),
		stopCh:   make(chan struct{}),
	}

	// Start cleanup goroutine.
	go s.cleanupLoop()

	return s
}

// cleanupLoop periodically removes expired sessions.
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired sessions.
func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, token)
		}
	}
}

// Create persists a session under its token.
func (s *MemoryStore) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy so callers can't mutate the stored session.
	stored := *session
	s.sessions[session.Token] = &stored
	return nil
}

// Get retrieves a session by token.
func (s *MemoryStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[token]
	if !exists || session.IsExpired() {
		return nil, domain.ErrSessionNotFound
	}

	result := *session
	return &result, nil
}

// Destroy removes a session by token.
func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stopped {
		close(s.stopCh)
		s.stopped = true
	}
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
