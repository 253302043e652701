// Package session carries the authenticated identity that scopes every
// application read and write. A Context is passed explicitly; there is no
// process-wide session.
package session

import (
	"context"

	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// Identity is the authenticated account.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// Context is either anonymous or holds an identity and its credential token.
type Context struct {
	identity *Identity
	token    string
}

// Anonymous returns the "no session" context.
func Anonymous() Context {
	return Context{}
}

// New returns an authenticated context. An identity without an ID yields Anonymous.
func New(identity Identity, token string) Context {
	if identity.ID == "" {
		return Anonymous()
	}
	return Context{identity: &identity, token: token}
}

// IsAuthenticated reports whether an identity is present.
func (c Context) IsAuthenticated() bool {
	return c.identity != nil
}

// CurrentOwner returns the identity or an authorization error when there is no session.
func (c Context) CurrentOwner() (Identity, error) {
	if c.identity == nil {
		return Identity{}, apperrors.NewUnauthorized("session required")
	}
	return *c.identity, nil
}

// Token returns the opaque credential the session was built from.
func (c Context) Token() string {
	return c.token
}

// Authorize fails unless the session belongs to ownerID.
func (c Context) Authorize(ownerID string) error {
	owner, err := c.CurrentOwner()
	if err != nil {
		return err
	}
	if ownerID == "" || owner.ID != ownerID {
		return apperrors.NewUnauthorized("owner mismatch")
	}
	return nil
}

type contextKey struct{}

// WithContext attaches s to ctx.
func WithContext(ctx context.Context, s Context) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached to ctx, or Anonymous.
func FromContext(ctx context.Context) Context {
	if ctx == nil {
		return Anonymous()
	}
	if s, ok := ctx.Value(contextKey{}).(Context); ok {
		return s
	}
	return Anonymous()
}
