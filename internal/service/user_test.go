package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/falci/falci/internal/storage"
)

func newUserService() *UserService {
	return NewUserService(storage.NewMemory(), nil)
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username:   "ayse",
		Password:   "cok-gizli",
		ZodiacSign: "Aslan",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated user id")
	}
	if user.PasswordHash == "cok-gizli" || !strings.HasPrefix(user.PasswordHash, "$argon2id$") {
		t.Error("password must be stored as an argon2id hash")
	}

	logged, err := svc.Login(ctx, "ayse", "cok-gizli")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("login returned wrong user: %s", logged.ID)
	}

	if _, err := svc.Login(ctx, "ayse", "yanlis"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "bilinmeyen", "cok-gizli"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: " ", Password: "x"}); !errors.Is(err, ErrUsernameMissing) {
		t.Errorf("expected ErrUsernameMissing, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "ali", Password: "  "}); !errors.Is(err, ErrPasswordMissing) {
		t.Errorf("expected ErrPasswordMissing, got %v", err)
	}
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "ali", Password: "p1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "ali", Password: "p2"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc := newUserService()

	if _, err := svc.GetUser(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
