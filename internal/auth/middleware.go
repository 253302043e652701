package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/job-tracker/internal/repository"
	"github.com/spec-kit/job-tracker/internal/session"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

const (
	sessionKey = "auth_session"
	claimsKey  = "auth_claims"
)

// AuthMiddleware validates bearer tokens and builds the request session.
type AuthMiddleware struct {
	tokens  *TokenManager
	users   repository.UserRepository
	revoked RevocationStore
	logger  *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, revoked RevocationStore, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, revoked: revoked, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}
	raw := strings.TrimSpace(parts[1])

	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			// Revocation is best effort; an unreachable store must not lock everyone out.
			m.logger.Warn("revocation lookup failed", zap.Error(err))
		} else if revoked {
			return apperrors.NewUnauthorized("session ended")
		}
	}

	user, err := m.users.GetByID(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.NewStorageFailure(err)
	}

	sess := session.New(session.Identity{ID: user.ID, Name: user.Name, Email: user.Email}, raw)
	c.Locals(sessionKey, sess)
	c.Locals(claimsKey, claims)
	c.SetUserContext(session.WithContext(c.UserContext(), sess))
	return c.Next()
}

// SessionFromContext returns the request session, or Anonymous.
func SessionFromContext(c *fiber.Ctx) session.Context {
	if sess, ok := c.Locals(sessionKey).(session.Context); ok {
		return sess
	}
	return session.Anonymous()
}

// ClaimsFromContext returns the parsed token claims of the request.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok
}
