package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the single entity managed by the service. Deleting a user flips
// IsActive to false; the record itself is never removed.
type User struct {
	ID             uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	Surname        string    `json:"surname"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// UserPatch carries the fields of a partial update. Nil fields are left as is.
type UserPatch struct {
	Name    *string
	Surname *string
	Email   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Surname == nil && p.Email == nil
}

// Fields returns the column/value pairs that the patch sets.
func (p UserPatch) Fields() map[string]any {
	fields := make(map[string]any, 3)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Surname != nil {
		fields["surname"] = *p.Surname
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	return fields
}
