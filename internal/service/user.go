package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/falci/falci/internal/auth"
	"github.com/falci/falci/internal/model"
	"github.com/falci/falci/internal/storage"
)

// User service errors.
var (
	ErrUsernameMissing    = errors.New("username is required")
	ErrPasswordMissing    = errors.New("password is required")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService manages identity records. It issues no sessions or tokens:
// a userId on fortune requests remains a caller-supplied opaque tag.
type UserService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(store storage.Store, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{store: store, logger: logger}
}

// RegisterInput defines input for creating a user.
type RegisterInput struct {
	Username   string
	Password   string
	ZodiacSign string
}

// Register creates a user with an argon2id-hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameMissing
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, ErrPasswordMissing
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, storage.CreateUserInput{
		Username:     username,
		PasswordHash: hash,
		ZodiacSign:   strings.TrimSpace(input.ZodiacSign),
	})
	if err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves one user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Login verifies a username/password pair and returns the user.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
