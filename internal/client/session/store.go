package session

import (
	"context"
	"log"
	"sync"

	"backend-wayfinder/internal/client/api"
)

// Provider is the slice of the auth client the store depends on.
type Provider interface {
	OnStateChange(func(*api.Identity)) func()
	Logout(ctx context.Context) error
}

// Store turns the provider's state-change callbacks into a single observable
// current-user value. Construct it where the application starts and Close it
// on teardown so the listener is released.
type Store struct {
	mu          sync.RWMutex
	provider    Provider
	current     *api.Identity
	loading     bool
	unsubscribe func()
}

func NewStore(p Provider) *Store {
	s := &Store{
		provider: p,
		loading:  true,
	}
	s.unsubscribe = p.OnStateChange(func(identity *api.Identity) {
		s.mu.Lock()
		s.current = identity
		s.loading = false
		s.mu.Unlock()
	})
	return s
}

func (s *Store) CurrentUser() *api.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Logout signs out with the provider and clears the local identity. Provider
// failures are logged, never surfaced; the local session ends regardless.
func (s *Store) Logout(ctx context.Context) {
	if err := s.provider.Logout(ctx); err != nil {
		log.Printf("logout error: %v", err)
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Close releases the provider subscription. Safe to call more than once.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
