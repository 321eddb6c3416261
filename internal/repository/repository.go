package repository

import (
	"context"

	"minishort/internal/domain"
)

// EntryRepository defines the interface for short-link data access.
// This is the "Repository Pattern" - handlers and services never touch the map directly.
//
// Implementations must be safe for concurrent use.
type EntryRepository interface {
	// Get retrieves an entry by exact short ID match.
	// Returns domain.ErrNotFound when the ID is unknown.
	Get(ctx context.Context, id string) (*domain.Entry, error)

	// Add inserts a new entry.
	// Returns domain.ErrDuplicateID if the ID is already taken; existing entries are never overwritten.
	Add(ctx context.Context, entry *domain.Entry) error

	// All enumerates every entry. The order is stable within a single call.
	All(ctx context.Context) ([]*domain.Entry, error)

	// FindByURL returns the first entry whose stored URL equals url byte for byte.
	// Returns domain.ErrNotFound when no entry matches.
	FindByURL(ctx context.Context, url string) (*domain.Entry, error)

	// Len reports the number of stored entries
	Len() int
}
