package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/job-tracker/internal/auth"
	"github.com/spec-kit/job-tracker/internal/config"
	"github.com/spec-kit/job-tracker/internal/events"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

func newAuthFixture() (*AuthService, *mockUserRepo, *ActivityService) {
	users := newMockUserRepo()
	dispatcher := events.NewInMemoryDispatcher()
	activity := NewActivityService(dispatcher, nil)
	activity.RegisterHandlers()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            bcrypt.MinCost,
	}, AuthDependencies{UserRepo: users, Dispatcher: dispatcher})
	return svc, users, activity
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, activity := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ada", " Ada@Example.com ", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.User.Email != "ada@example.com" || reg.Token == "" {
		t.Errorf("unexpected session %+v", reg)
	}
	if activity.Counts()[events.EventAccountRegistered] != 1 {
		t.Error("expected registration event")
	}

	login, err := svc.Login(ctx, "ADA@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	claims, err := svc.TokenManager().ParseToken(login.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Subject != reg.User.ID {
		t.Errorf("expected subject %s, got %s", reg.User.ID, claims.Subject)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name, user, email, password string
	}{
		{name: "missing name", user: " ", email: "a@b.c", password: "password123"},
		{name: "bad email", user: "Ada", email: "nope", password: "password123"},
		{name: "short password", user: "Ada", email: "a@b.c", password: "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newAuthFixture()
			if _, err := svc.Register(context.Background(), tt.user, tt.email, tt.password); !apperrors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateAndStorageErrors(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "Ada", "ADA@example.com", "password123"); !apperrors.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}

	users.createErr = errStorageDown
	if _, err := svc.Register(ctx, "Bob", "bob@example.com", "password123"); !apperrors.IsStorageFailure(err) {
		t.Errorf("expected storage failure, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Login(ctx, "ada@example.com", "wrong-password"); !apperrors.IsUnauthorized(err) {
		t.Errorf("wrong password: expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "password123"); !apperrors.IsUnauthorized(err) {
		t.Errorf("unknown email: expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	reg, err := svc.Register(ctx, "Ada", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	claims, err := svc.TokenManager().ParseToken(reg.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	revoked, err := svc.Revocations().IsRevoked(ctx, claims.ID)
	if err != nil || !revoked {
		t.Errorf("expected revoked token, got %v, %v", revoked, err)
	}
	if err := svc.Logout(ctx, nil); !apperrors.IsUnauthorized(err) {
		t.Errorf("expected unauthorized for missing claims, got %v", err)
	}
	if !reg.ExpiresAt.After(time.Now()) {
		t.Error("expected token expiry in the future")
	}
}

func TestMe(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if _, err := svc.Me(context.Background()); !apperrors.IsUnauthorized(err) {
		t.Errorf("expected unauthorized, got %v", err)
	}
	identity, err := svc.Me(ownerCtx("alice"))
	if err != nil || identity.ID != "alice" {
		t.Errorf("unexpected identity %+v, %v", identity, err)
	}
}

var _ auth.RevocationStore = auth.NewMemoryRevocationStore()
