package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

// CreateUser hashes the password and stores a new active user.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.New(),
		Name:           input.Name,
		Surname:        input.Surname,
		Email:          input.Email,
		HashedPassword: hash,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID.String()).Msg("user created")
	return created, nil
}

// GetUser returns the user with the given id, including deactivated ones.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return user, nil
}

// UpdateUser applies a non-empty partial update to an active user.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (uuid.UUID, error) {
	if patch.IsEmpty() {
		return uuid.Nil, domain.ErrEmptyUpdate
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return uuid.Nil, notFound(err, id)
	}

	s.withActor(ctx).Info().Str("user_id", updated.String()).Int("fields", len(patch.Fields())).Msg("user updated")
	return updated, nil
}

// DeleteUser soft-deletes an active user by clearing its active flag.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	deleted, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return uuid.Nil, notFound(err, id)
	}

	s.withActor(ctx).Info().Str("user_id", deleted.String()).Msg("user deactivated")
	return deleted, nil
}

// withActor tags the logger with the id of the authenticated caller, if any.
func (s *UserService) withActor(ctx context.Context) *zerolog.Logger {
	l := s.logger
	if actor, ok := domain.ActorFromContext(ctx); ok {
		l = l.With().Str("actor_id", actor.ID.String()).Logger()
	}
	return &l
}

// notFound attaches the requested id to a bare ErrUserNotFound so the
// transport layer can render it.
func notFound(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return &domain.NotFoundError{ID: id.String()}
	}
	return err
}
