package inmemory

import (
	"context"
	"strings"
	"sync"
)

// Store is the default process-lifetime interest store: a mutex-guarded map
// of userID to an ordered interest list. Entries never expire on their own.
type Store struct {
	mu    sync.RWMutex
	users map[string][]string
}

func NewStore() *Store {
	return &Store{users: make(map[string][]string)}
}

func (s *Store) Get(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.users[userID]...), nil
}

func (s *Store) Add(ctx context.Context, userID, interest string) error {
	trimmed := strings.TrimSpace(interest)
	if trimmed == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := strings.ToLower(trimmed)
	for _, existing := range s.users[userID] {
		if strings.ToLower(existing) == normalized {
			return nil
		}
	}
	s.users[userID] = append(s.users[userID], trimmed)
	return nil
}

func (s *Store) Remove(ctx context.Context, userID, interest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := strings.ToLower(interest)
	kept := s.users[userID][:0]
	for _, existing := range s.users[userID] {
		if strings.ToLower(existing) != normalized {
			kept = append(kept, existing)
		}
	}
	s.users[userID] = kept
	return nil
}

func (s *Store) Set(ctx context.Context, userID string, interests []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = append([]string(nil), interests...)
	return nil
}

func (s *Store) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}
