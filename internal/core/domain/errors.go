package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyUpdate        = errors.New("at least one parameter for user update info should be provided")
)

// ConflictError reports a unique constraint violation raised by the store.
// Detail holds the store's own message and is surfaced to the caller as is.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Detail)
}

// NotFoundError is returned when no live record exists for the given id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User with id %s not found.", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}
