package handler

import (
	"github.com/google/uuid"

	"github.com/99minutos/user-service/internal/core/domain"
)

// --- Request / Response types ---

type createUserRequest struct {
	Name     string `json:"name"     validate:"required,min=1,letters"`
	Surname  string `json:"surname"  validate:"required,min=1,letters"`
	Email    string `json:"email"    validate:"required,email"`
	// bcrypt only hashes the first 72 bytes and refuses anything longer.
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// updateUserRequest uses pointers so that omitted fields stay nil while an
// explicit "" is still validated.
type updateUserRequest struct {
	Name    *string `json:"name"    validate:"omitnil,min=1,letters"`
	Surname *string `json:"surname" validate:"omitnil,min=1,letters"`
	Email   *string `json:"email"   validate:"omitnil,email"`
}

func (r updateUserRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Surname: r.Surname, Email: r.Email}
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type userResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	Email    string    `json:"email"`
	IsActive bool      `json:"is_active"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		UserID:   u.ID,
		Name:     u.Name,
		Surname:  u.Surname,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

type updateUserResponse struct {
	UpdatedUserID uuid.UUID `json:"updated_user_id"`
}

type deleteUserResponse struct {
	DeletedUserID uuid.UUID `json:"deleted_user_id"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
