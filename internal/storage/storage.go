// Package storage provides persistence for fortune and user records.
// Two interchangeable implementations exist: a volatile in-memory store for
// development and a PostgreSQL-backed store for production. Both satisfy
// Store with identical observable behavior: same ordering, same
// optional-field defaulting, same not-found semantics.
package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/falci/falci/internal/model"
)

// Common errors for store operations.
var (
	ErrFortuneNotFound = errors.New("fortune not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrInvalidType     = errors.New("invalid fortune type")
)

// CreateFortuneInput carries the fields of a new fortune record.
// UserID and Data are optional and default to absent.
type CreateFortuneInput struct {
	UserID  string
	Type    model.FortuneType
	Title   string
	Content string
	Data    json.RawMessage
}

// CreateUserInput carries the fields of a new user record.
type CreateUserInput struct {
	Username     string
	PasswordHash string
	ZodiacSign   string
}

// Store is the persistence contract. The concrete implementation is chosen
// once at startup and injected; callers never branch on the backing engine.
type Store interface {
	// CreateFortune assigns a new unique id and current timestamp, stores
	// and returns the full record. The fortune type must be valid.
	CreateFortune(ctx context.Context, input CreateFortuneInput) (*model.Fortune, error)
	// GetFortunes returns all fortunes ordered by creation time descending.
	// A non-empty userID restricts the result to that user's records.
	GetFortunes(ctx context.Context, userID string) ([]*model.Fortune, error)
	// GetFortune retrieves one fortune or ErrFortuneNotFound.
	GetFortune(ctx context.Context, id string) (*model.Fortune, error)
	// DeleteFortune reports whether a record existed and was removed.
	// Deleting the same id twice is false the second time.
	DeleteFortune(ctx context.Context, id string) (bool, error)

	CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
	// Close releases underlying resources.
	Close()
}
