package relational

import (
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/user-service/internal/core/domain"
)

type userModel struct {
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Name           string    `gorm:"not null"`
	Surname        string    `gorm:"not null"`
	Email          string    `gorm:"not null;uniqueIndex:users_email_key"`
	IsActive       bool      `gorm:"not null;default:true"`
	HashedPassword string    `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (userModel) TableName() string {
	return "users"
}

func toModel(u *domain.User) *userModel {
	return &userModel{
		UserID:         u.ID,
		Name:           u.Name,
		Surname:        u.Surname,
		Email:          u.Email,
		IsActive:       u.IsActive,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:             m.UserID,
		Name:           m.Name,
		Surname:        m.Surname,
		Email:          m.Email,
		IsActive:       m.IsActive,
		HashedPassword: m.HashedPassword,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
