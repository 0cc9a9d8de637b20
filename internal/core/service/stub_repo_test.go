package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[uuid.UUID]*domain.User
	findErr error // if set, FindByEmail returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uuid.UUID]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range r.byID {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.emailTaken(user.Email, uuid.Nil) {
		return nil, &domain.ConflictError{Detail: fmt.Sprintf("duplicate email %s", user.Email)}
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, id uuid.UUID, patch domain.UserPatch) (uuid.UUID, error) {
	u, ok := r.byID[id]
	if !ok || !u.IsActive {
		return uuid.Nil, domain.ErrUserNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return uuid.Nil, &domain.ConflictError{Detail: "duplicate email"}
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Surname != nil {
		u.Surname = *patch.Surname
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	return id, nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	u, ok := r.byID[id]
	if !ok || !u.IsActive {
		return uuid.Nil, domain.ErrUserNotFound
	}
	u.IsActive = false
	return id, nil
}

func (r *stubUserRepo) Ping(context.Context) error { return nil }

var _ ports.UserRepository = (*stubUserRepo)(nil)

// plainHasher keeps tests fast; bcrypt is covered in internal/pkg/password.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(h, p string) bool       { return h == "hashed:"+p }

var discardLogger = zerolog.Nop()

func strPtr(s string) *string { return &s }
