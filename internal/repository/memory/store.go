package memory

import (
	"context"
	"fmt"
	"sync"

	"minishort/internal/domain"
	"minishort/internal/repository"
)

// store is the in-memory implementation of repository.EntryRepository.
// The map gives O(1) lookups by ID; the ids slice remembers insertion order
// so that All returns entries in a stable order.
type store struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry
	ids     []string
}

// NewStore creates a store pre-populated with the given entries.
// Seeding with a duplicate ID is a programming error and panics.
func NewStore(seed ...*domain.Entry) repository.EntryRepository {
	s := &store{
		entries: make(map[string]*domain.Entry, len(seed)),
		ids:     make([]string, 0, len(seed)),
	}

	for _, e := range seed {
		if err := s.add(e); err != nil {
			panic(fmt.Sprintf("memory: invalid seed entry %q: %v", e.ID, err))
		}
	}

	return s
}

// Get retrieves an entry by its short ID
func (s *store) Get(ctx context.Context, id string) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	return e.Clone(), nil
}

// Add inserts a new entry, rejecting an ID that is already present
func (s *store) Add(ctx context.Context, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.add(entry)
}

// add assumes the write lock is held (or that the store is not yet shared)
func (s *store) add(entry *domain.Entry) error {
	if _, exists := s.entries[entry.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, entry.ID)
	}

	s.entries[entry.ID] = entry.Clone()
	s.ids = append(s.ids, entry.ID)

	return nil
}

// All returns a snapshot of every entry in insertion order
func (s *store) All(ctx context.Context) ([]*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Entry, 0, len(s.ids))
	for _, id := range s.ids {
		result = append(result, s.entries[id].Clone())
	}

	return result, nil
}

// FindByURL scans the entries for an exact URL match
func (s *store) FindByURL(ctx context.Context, url string) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.ids {
		if e := s.entries[id]; e.URL == url {
			return e.Clone(), nil
		}
	}

	return nil, fmt.Errorf("%w: url %s", domain.ErrNotFound, url)
}

// Len returns the number of stored entries
func (s *store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ids)
}
