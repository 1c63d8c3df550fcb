package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestService() (*Service, *InMemoryUserRepository) {
	repo := NewInMemoryUserRepository()
	tokens := NewTokenManager("test-secret-key-for-testing-only", 24*time.Hour)
	return NewService(repo, tokens, NewMemoryDenylist(), zerolog.Nop()), repo
}

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	service, repo := newTestService()

	password := "Password@123"

	_, err := service.Register(context.Background(), "Test User", "test@example.com", password, RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "A", "a@example.com", "pw", RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := service.Register(ctx, "A", "A@example.com ", "pw", RoleAdmin)
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	_, err = service.Register(ctx, "", "b@example.com", "pw", RoleAdmin)
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	if _, err := service.EnsureAdmin(ctx, "admin@example.com", "password", 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	token, user, err := service.Login(ctx, "admin@example.com", "password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || user.Role != RoleAdmin {
		t.Fatalf("unexpected login result: token=%q role=%q", token, user.Role)
	}

	if _, _, err := service.Login(ctx, "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := service.Login(ctx, "nobody@example.com", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	first, err := service.EnsureAdmin(ctx, "admin@example.com", "password", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.EnsureAdmin(ctx, "admin@example.com", "other", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same user, got %s and %s", first.ID, second.ID)
	}

	id, err := repo.GetRestaurantIDForUser(ctx, first.ID)
	if err != nil || id != 2 {
		t.Fatalf("expected restaurant 2, got %d (%v)", id, err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	if _, err := service.EnsureAdmin(ctx, "admin@example.com", "password", 1); err != nil {
		t.Fatalf("seed: %v", err)
	}
	token, _, err := service.Login(ctx, "admin@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := service.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	if err := service.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := service.Authenticate(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestMe(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	admin, _ := service.EnsureAdmin(ctx, "admin@example.com", "password", 1)
	user, restaurantID, err := service.Me(ctx, admin.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "admin@example.com" || restaurantID != 1 {
		t.Fatalf("unexpected me: %s %d", user.Email, restaurantID)
	}

	unlinked, _ := service.Register(ctx, "Solo", "solo@example.com", "pw", RoleAdmin)
	_, restaurantID, err = service.Me(ctx, unlinked.ID)
	if err != nil || restaurantID != 0 {
		t.Fatalf("expected unlinked user, got %d (%v)", restaurantID, err)
	}

	if _, _, err := service.Me(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
