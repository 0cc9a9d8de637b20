package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/user-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository stores users as single documents keyed by their UUID.
// Every operation touches one document and is therefore atomic on its own.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Surname        string    `bson:"surname"`
	Email          string    `bson:"email"`
	IsActive       bool      `bson:"is_active"`
	HashedPassword string    `bson:"hashed_password"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(mu.ID)
	if err != nil {
		return nil, fmt.Errorf("decode user id %q: %w", mu.ID, err)
	}
	return &domain.User{
		ID:             id,
		Name:           mu.Name,
		Surname:        mu.Surname,
		Email:          mu.Email,
		IsActive:       mu.IsActive,
		HashedPassword: mu.HashedPassword,
		CreatedAt:      mu.CreatedAt,
		UpdatedAt:      mu.UpdatedAt,
	}, nil
}

// EnsureIndexes creates the unique email index backing conflict detection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	return err
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:             user.ID.String(),
		Name:           user.Name,
		Surname:        user.Surname,
		Email:          user.Email,
		IsActive:       user.IsActive,
		HashedPassword: user.HashedPassword,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.ConflictError{Detail: err.Error()}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	return &created, nil
}

// FindByID retrieves a user by id. Inactive users are returned as well.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain()
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (uuid.UUID, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return uuid.Nil, domain.ErrEmptyUpdate
	}
	return r.updateActive(ctx, id, bson.M(fields))
}

// Deactivate flips is_active to false on the active user with the given id.
func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return r.updateActive(ctx, id, bson.M{"is_active": false})
}

func (r *UserRepository) updateActive(ctx context.Context, id uuid.UUID, set bson.M) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["updated_at"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id.String(), "is_active": true},
		bson.M{"$set": set},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return uuid.Nil, &domain.ConflictError{Detail: err.Error()}
		}
		return uuid.Nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return uuid.Nil, domain.ErrUserNotFound
	}
	return id, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}
