package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/job-tracker/internal/auth"
	"github.com/spec-kit/job-tracker/internal/config"
	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/events"
	"github.com/spec-kit/job-tracker/internal/repository"
	"github.com/spec-kit/job-tracker/internal/session"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	revoked    auth.RevocationStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationStore
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// Session is the result of a successful register or login.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	revoked := deps.Revocations
	if revoked == nil {
		revoked = auth.NewMemoryRevocationStore()
	}
	return &AuthService{
		users:      deps.UserRepo,
		revoked:    revoked,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", map[string]any{"field": "name"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("email is invalid", map[string]any{"field": "email"})
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"field": "password"})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	if s.dispatcher != nil {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAccountRegistered,
			OwnerID:   user.ID,
			Timestamp: time.Now().UTC(),
			Payload:   events.AccountRegisteredPayload{Email: user.Email},
		}
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return s.issue(user)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issue(user)
}

// Logout revokes the token described by claims until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return apperrors.NewUnauthorized("session required")
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperrors.NewStorageFailure(err)
	}
	return nil
}

// Me returns the identity of the session attached to ctx.
func (s *AuthService) Me(ctx context.Context) (session.Identity, error) {
	return session.FromContext(ctx).CurrentOwner()
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Revocations exposes the revocation store for middleware usage.
func (s *AuthService) Revocations() auth.RevocationStore {
	return s.revoked
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(session.Identity{ID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
