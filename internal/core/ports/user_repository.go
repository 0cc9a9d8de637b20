package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/99minutos/user-service/internal/core/domain"
)

// UserRepository defines persistence operations for users. Each call is its
// own unit of work: it either fully applies or leaves the store untouched.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields *domain.ConflictError.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByID returns the user regardless of its active flag.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update applies patch to the active user with the given id and returns
	// that id. It yields domain.ErrUserNotFound when no active user matches.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (uuid.UUID, error)
	// Deactivate sets is_active=false on the active user with the given id.
	Deactivate(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	// Ping checks that the underlying store is reachable.
	Ping(ctx context.Context) error
}
