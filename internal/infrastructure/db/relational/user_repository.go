package relational

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/99minutos/user-service/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row inside its own transaction.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := toModel(user)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, r.translate(err, "insert user")
	}
	return m.toDomain(), nil
}

// FindByID retrieves a user by id. Inactive users are returned as well.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, "user_id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m userModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return m.toDomain(), nil
}

// Update applies the patch to the active user with the given id.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (uuid.UUID, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return uuid.Nil, domain.ErrEmptyUpdate
	}
	return r.updateActive(ctx, id, fields, "update user")
}

// Deactivate flips is_active to false on the active user with the given id.
func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return r.updateActive(ctx, id, map[string]any{"is_active": false}, "deactivate user")
}

func (r *UserRepository) updateActive(ctx context.Context, id uuid.UUID, fields map[string]any, op string) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userModel{}).
			Where("user_id = ? AND is_active = ?", id, true).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return uuid.Nil, err
		}
		return uuid.Nil, r.translate(err, op)
	}
	return id, nil
}

// Ping checks connectivity of the underlying pool.
func (r *UserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate turns unique violations into *domain.ConflictError while keeping
// the driver's message.
func (r *UserRepository) translate(err error, op string) error {
	if translator, ok := r.db.Dialector.(gorm.ErrorTranslator); ok {
		if errors.Is(translator.Translate(err), gorm.ErrDuplicatedKey) {
			return &domain.ConflictError{Detail: err.Error()}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
