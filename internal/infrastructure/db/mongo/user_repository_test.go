package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/99minutos/user-service/internal/core/domain"
)

func sampleUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Name:           "Boba",
		Surname:        "Bobenko",
		Email:          "boba@boba.com",
		HashedPassword: "SampleHashedPass",
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
}

func userDoc(u *domain.User) bson.D {
	return bson.D{
		{Key: "_id", Value: u.ID.String()},
		{Key: "name", Value: u.Name},
		{Key: "surname", Value: u.Surname},
		{Key: "email", Value: u.Email},
		{Key: "is_active", Value: u.IsActive},
		{Key: "hashed_password", Value: u.HashedPassword},
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "users.users"

	mt.Run("create", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := sampleUser()
		created, err := repo.Create(context.Background(), user)
		require.NoError(mt, err)
		assert.Equal(mt, user.ID, created.ID)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users.users index: users_email_key",
		}))

		_, err := repo.Create(context.Background(), sampleUser())
		var conflict *domain.ConflictError
		require.ErrorAs(mt, err, &conflict)
		assert.Contains(mt, conflict.Detail, "duplicate key")
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		user := sampleUser()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, userDoc(user)))

		got, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(mt, err)
		assert.Equal(mt, user.ID, got.ID)
		assert.Equal(mt, "boba@boba.com", got.Email)
		assert.True(mt, got.IsActive)
	})

	mt.Run("find by email not found", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "ghost@boba.com")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		name := "Petro"
		id := uuid.New()
		got, err := repo.Update(context.Background(), id, domain.UserPatch{Name: &name})
		require.NoError(mt, err)
		assert.Equal(mt, id, got)
	})

	mt.Run("update empty patch", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}

		_, err := repo.Update(context.Background(), uuid.New(), domain.UserPatch{})
		assert.ErrorIs(mt, err, domain.ErrEmptyUpdate)
	})

	mt.Run("deactivate missing or inactive", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		_, err := repo.Deactivate(context.Background(), uuid.New())
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("update email collision", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		email := "taken@boba.com"
		_, err := repo.Update(context.Background(), uuid.New(), domain.UserPatch{Email: &email})
		var conflict *domain.ConflictError
		assert.ErrorAs(mt, err, &conflict)
	})
}
