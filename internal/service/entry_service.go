package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"minishort/internal/domain"
	"minishort/internal/metrics"
	"minishort/internal/repository"
	"minishort/pkg/validator"
)

// ErrIDGeneration is returned when no usable short ID could be produced.
// Its message is the plain-text body of the 500 response.
var ErrIDGeneration = errors.New("Error generating ID") //nolint:staticcheck // exact response text

// CreateResult is the outcome of a successful CreateEntry call.
// Created is true for a fresh insert and false when an existing entry
// with the same canonical URL was returned instead.
type CreateResult struct {
	Entry   *domain.Entry
	Created bool
}

// EntryService handles business logic for short links
// This is the SERVICE LAYER - it sits between HTTP handlers and the store
type EntryService struct {
	repo  repository.EntryRepository
	newID IDGenerator

	// writeMu makes the duplicate check, ID generation and insert one atomic
	// step with respect to other creators. Readers go straight to the store.
	writeMu sync.Mutex
}

// NewEntryService creates a new entry service.
// A nil generator means GenerateShortID.
func NewEntryService(repo repository.EntryRepository, newID IDGenerator) *EntryService {
	if newID == nil {
		newID = GenerateShortID
	}

	metrics.SetStoredEntries(repo.Len())

	return &EntryService{
		repo:  repo,
		newID: newID,
	}
}

// CreateEntry validates, canonicalizes, deduplicates and stores a URL.
// Steps run in this order and the first failure wins:
// 1. empty check  2. pattern check  3. canonicalize
// 4. duplicate check  5. ID generation  6. insert
func (s *EntryService) CreateEntry(ctx context.Context, rawURL string) (*CreateResult, error) {
	if err := validator.ValidateURL(rawURL); err != nil {
		if errors.Is(err, validator.ErrEmptyURL) {
			metrics.RecordValidationFailure("empty")
		} else {
			metrics.RecordValidationFailure("invalid")
		}
		return nil, err
	}

	canonical := domain.Canonicalize(rawURL)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	existing, err := s.repo.FindByURL(ctx, canonical)
	if err == nil {
		metrics.RecordDuplicate()
		return &CreateResult{Entry: existing, Created: false}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for duplicates: %w", err)
	}

	id := s.newID()
	if id == "" {
		metrics.RecordIDGenerationFailure()
		return nil, ErrIDGeneration
	}

	entry := domain.NewEntry(id, canonical)
	if err := s.repo.Add(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			// Collisions are rejected, never overwritten
			metrics.RecordIDGenerationFailure()
			return nil, fmt.Errorf("%w: %v", ErrIDGeneration, err)
		}
		return nil, fmt.Errorf("failed to store entry: %w", err)
	}

	metrics.RecordEntryCreated(s.repo.Len())

	return &CreateResult{Entry: entry, Created: true}, nil
}

// ResolveEntry looks up the entry behind a short ID.
// Returns an error wrapping domain.ErrNotFound for unknown IDs.
func (s *EntryService) ResolveEntry(ctx context.Context, id string) (*domain.Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.RecordRedirectMiss()
		}
		return nil, err
	}

	metrics.RecordRedirect()
	return entry, nil
}

// ListEntries returns every stored entry
func (s *EntryService) ListEntries(ctx context.Context) ([]*domain.Entry, error) {
	entries, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}
