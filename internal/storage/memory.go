package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/falci/falci/internal/model"
)

// MemoryStore is the volatile development store. All collections live behind
// a single RWMutex; requests may run in parallel.
type MemoryStore struct {
	mu       sync.RWMutex
	fortunes map[string]*model.Fortune
	users    map[string]*model.User
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		fortunes: make(map[string]*model.Fortune),
		users:    make(map[string]*model.User),
	}
}

// CreateFortune stores a new fortune with a generated id and UTC timestamp.
func (s *MemoryStore) CreateFortune(ctx context.Context, input CreateFortuneInput) (*model.Fortune, error) {
	if !input.Type.IsValid() {
		return nil, ErrInvalidType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fortune := &model.Fortune{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Content:   input.Content,
		Data:      input.Data,
		CreatedAt: time.Now().UTC(),
	}
	s.fortunes[fortune.ID] = fortune

	return copyFortune(fortune), nil
}

// GetFortunes returns fortunes newest first, optionally filtered by user.
func (s *MemoryStore) GetFortunes(ctx context.Context, userID string) ([]*model.Fortune, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*model.Fortune, 0, len(s.fortunes))
	for _, fortune := range s.fortunes {
		if userID != "" && fortune.UserID != userID {
			continue
		}
		entries = append(entries, fortune)
	}

	// Same ordering rule as the SQL backend: created_at DESC, id DESC.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	fortunes := make([]*model.Fortune, len(entries))
	for i, fortune := range entries {
		fortunes[i] = copyFortune(fortune)
	}

	return fortunes, nil
}

// GetFortune retrieves one fortune by id.
func (s *MemoryStore) GetFortune(ctx context.Context, id string) (*model.Fortune, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fortune, ok := s.fortunes[id]
	if !ok {
		return nil, ErrFortuneNotFound
	}
	return copyFortune(fortune), nil
}

// DeleteFortune removes a fortune and reports whether it existed.
func (s *MemoryStore) DeleteFortune(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fortunes[id]; !ok {
		return false, nil
	}
	delete(s.fortunes, id)
	return true, nil
}

// CreateUser stores a new user with a generated id.
func (s *MemoryStore) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == input.Username {
			return nil, ErrUsernameExists
		}
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		ZodiacSign:   input.ZodiacSign,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}

// GetUser retrieves one user by id.
func (s *MemoryStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetUserByUsername retrieves one user by their unique handle.
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() {}

// copyFortune returns a shallow copy so callers cannot mutate stored state.
// The Data slice is shared; fortunes are immutable after creation.
func copyFortune(f *model.Fortune) *model.Fortune {
	copied := *f
	return &copied
}
