package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, NewMemoryLoginRateLimiter(time.Minute, 10))

	user, err := svc.Register(ctx, RegisterInput{Email: "  Ana@Example.com ", DisplayName: " Ana ", Password: "correct horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ana@example.com" || user.DisplayName != "Ana" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct horse" {
		t.Fatalf("expected hashed password")
	}

	got, err := svc.Authenticate(ctx, "ANA@example.com", "correct horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected same user, got %s", got.ID)
	}

	if _, err := svc.Authenticate(ctx, "ana@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "whatever1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"empty email", RegisterInput{Password: "long enough"}, ErrInvalidEmail},
		{"malformed email", RegisterInput{Email: "not-an-email", Password: "long enough"}, ErrInvalidEmail},
		{"short password", RegisterInput{Email: "a@example.com", Password: "short"}, ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	repo.createErr = &pgconn.PgError{Code: "23505"}
	svc := NewUserService(zap.NewNop(), repo, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "long enough"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_LoginRateLimited(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), NewMemoryLoginRateLimiter(time.Minute, 2))

	for i := 0; i < 2; i++ {
		if _, err := svc.Authenticate(ctx, "a@example.com", "guess"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
	if _, err := svc.Authenticate(ctx, "a@example.com", "guess"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestUserService_GetByID(t *testing.T) {
	repo := newMockUserRepo()
	_ = repo.Create(context.Background(), domainUser("u1"))
	svc := NewUserService(zap.NewNop(), repo, nil)

	if _, err := svc.GetByID(context.Background(), "u1"); err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
