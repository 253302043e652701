package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/spec-kit/job-tracker/internal/domain"
)

var (
	// ErrNotFound covers both a missing id and an id owned by someone else.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ApplicationRepository is the owner-scoped application store. Every method
// that takes an ownerID only ever sees that owner's rows.
type ApplicationRepository interface {
	ListAll(ctx context.Context, ownerID string) ([]domain.Application, error)
	GetOne(ctx context.Context, ownerID, id string) (*domain.Application, error)
	// Insert assigns app.ID.
	Insert(ctx context.Context, app *domain.Application) error
	// Replace overwrites the row matching app.ID and app.OwnerID.
	Replace(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, ownerID, id string) error
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of an identifier issued by NewID.
// Lookups for malformed ids short-circuit to ErrNotFound.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
