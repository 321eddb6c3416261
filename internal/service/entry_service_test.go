package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"

	"minishort/internal/domain"
	"minishort/internal/repository/memory"
	"minishort/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockEntryRepository is a mock implementation of EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Get(ctx context.Context, id string) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) Add(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) All(ctx context.Context) ([]*domain.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByURL(ctx context.Context, url string) (*domain.Entry, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) Len() int {
	args := m.Called()
	return args.Int(0)
}

// ==================== HELPERS ====================

var shortIDPattern = regexp.MustCompile(`^[0-9a-f]{6}$`)

func fixedID(id string) IDGenerator {
	return func() string { return id }
}

func newSeededService(gen IDGenerator) *EntryService {
	return NewEntryService(memory.NewStore(domain.SeedEntries()...), gen)
}

// ==================== ID GENERATOR ====================

func TestGenerateShortID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id := GenerateShortID()
		require.Len(t, id, ShortIDLength)
		assert.Regexp(t, shortIDPattern, id)
		seen[id] = struct{}{}
	}

	// Best-effort uniqueness: a handful of collisions out of 200 would be astonishing
	assert.Greater(t, len(seen), 190)
}

// ==================== CREATE ENTRY ====================

func TestCreateEntry_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := newSeededService(nil)

	// Act
	result, err := service.CreateEntry(ctx, "example.com")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Regexp(t, shortIDPattern, result.Entry.ID)
	assert.Equal(t, "http://example.com", result.Entry.URL)

	resolved, err := service.ResolveEntry(ctx, result.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", resolved.URL)
}

func TestCreateEntry_Duplicate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	calls := 0
	service := newSeededService(func() string {
		calls++
		return fmt.Sprintf("abc%03d", calls)
	})

	// Act
	first, err := service.CreateEntry(ctx, "example.com")
	require.NoError(t, err)
	second, err := service.CreateEntry(ctx, "example.com")
	require.NoError(t, err)

	// Assert
	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.Entry, second.Entry)
	assert.Equal(t, 1, calls, "no ID is generated for a duplicate")

	entries, err := service.ListEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestCreateEntry_SchemeIsStillPrefixed(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(fixedID("aaaaaa"))

	result, err := service.CreateEntry(ctx, "https://x.com")
	require.NoError(t, err)
	assert.Equal(t, "http://https://x.com", result.Entry.URL)

	// The same malformed input still collapses to one entry
	again, err := service.CreateEntry(ctx, "https://x.com")
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, "aaaaaa", again.Entry.ID)
}

func TestCreateEntry_SeedURLIsNotADuplicate(t *testing.T) {
	// Seeds are stored without the canonical prefix, so "example.com" becomes
	// "http://example.com" and does not match the xyz123 seed.
	ctx := context.Background()
	service := newSeededService(fixedID("bbbbbb"))

	result, err := service.CreateEntry(ctx, "example.com")
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotEqual(t, "xyz123", result.Entry.ID)
}

func TestCreateEntry_IDGenerationFails(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(domain.SeedEntries()...)
	service := NewEntryService(store, fixedID(""))

	result, err := service.CreateEntry(ctx, "example.com")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrIDGeneration)
	assert.Equal(t, "Error generating ID", err.Error())
	assert.Equal(t, 3, store.Len(), "nothing is inserted")
}

func TestCreateEntry_IDCollisionIsRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(domain.SeedEntries()...)
	service := NewEntryService(store, fixedID("xyz123"))

	result, err := service.CreateEntry(ctx, "example.com")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrIDGeneration)

	// The seed entry keeps its URL
	seed, err := store.Get(ctx, "xyz123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", seed.URL)
}

func TestCreateEntry_TableDriven(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantErr     error
		wantCreated bool
		wantURL     string
	}{
		{name: "Empty URL", url: "", wantErr: validator.ErrEmptyURL},
		{name: "Not a URL", url: "not a url", wantErr: validator.ErrInvalidURL},
		{name: "Spaces after scheme", url: "http://bad url with spaces", wantErr: validator.ErrInvalidURL},
		{name: "Bare domain", url: "example.com", wantCreated: true, wantURL: "http://example.com"},
		{name: "With www", url: "www.golang.org", wantCreated: true, wantURL: "http://www.golang.org"},
		{name: "With query", url: "example.com?q=go", wantCreated: true, wantURL: "http://example.com?q=go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			service := newSeededService(fixedID("cccccc"))

			// Act
			result, err := service.CreateEntry(ctx, tt.url)

			// Assert
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, result.Created)
			assert.Equal(t, tt.wantURL, result.Entry.URL)
		})
	}
}

func TestCreateEntry_ValidationRunsBeforeStore(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockEntryRepository)
	mockRepo.On("Len").Return(0)
	service := NewEntryService(mockRepo, fixedID("dddddd"))

	// Act
	_, err := service.CreateEntry(ctx, "not a url")

	// Assert
	assert.ErrorIs(t, err, validator.ErrInvalidURL)
	mockRepo.AssertNotCalled(t, "FindByURL", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateEntry_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	storeDown := errors.New("store unavailable")

	t.Run("Duplicate scan fails", func(t *testing.T) {
		mockRepo := new(MockEntryRepository)
		mockRepo.On("Len").Return(0)
		mockRepo.On("FindByURL", ctx, "http://example.com").Return(nil, storeDown)
		service := NewEntryService(mockRepo, fixedID("eeeeee"))

		_, err := service.CreateEntry(ctx, "example.com")

		assert.ErrorIs(t, err, storeDown)
		assert.NotErrorIs(t, err, ErrIDGeneration)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Insert fails", func(t *testing.T) {
		mockRepo := new(MockEntryRepository)
		mockRepo.On("Len").Return(0)
		mockRepo.On("FindByURL", ctx, "http://example.com").Return(nil, domain.ErrNotFound)
		mockRepo.On("Add", ctx, mock.AnythingOfType("*domain.Entry")).Return(storeDown)
		service := NewEntryService(mockRepo, fixedID("eeeeee"))

		_, err := service.CreateEntry(ctx, "example.com")

		assert.ErrorIs(t, err, storeDown)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreateEntry_ConcurrentSameURL(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(nil)

	const workers = 64
	var created atomic.Int32
	ids := make(chan string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := service.CreateEntry(ctx, "concurrent.example.com")
			if !assert.NoError(t, err) {
				return
			}
			if result.Created {
				created.Add(1)
			}
			ids <- result.Entry.ID
		}()
	}
	wg.Wait()
	close(ids)

	assert.Equal(t, int32(1), created.Load(), "exactly one request inserts")

	var first string
	for id := range ids {
		if first == "" {
			first = id
		}
		assert.Equal(t, first, id)
	}

	entries, err := service.ListEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

// ==================== RESOLVE / LIST ====================

func TestResolveEntry(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(nil)

	entry, err := service.ResolveEntry(ctx, "ads45s")
	require.NoError(t, err)
	assert.Equal(t, "https://ballerina.io", entry.URL)

	_, err = service.ResolveEntry(ctx, "unknown-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListEntries_Seed(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(nil)

	entries, err := service.ListEntries(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.SeedEntries(), entries)
}

func TestListEntries_Error(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEntryRepository)
	mockRepo.On("Len").Return(0)
	mockRepo.On("All", ctx).Return(nil, errors.New("boom"))
	service := NewEntryService(mockRepo, nil)

	entries, err := service.ListEntries(ctx)

	assert.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "failed to list entries")
}
