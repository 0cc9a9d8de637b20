package ports

import (
	"context"

	"github.com/99minutos/user-service/internal/core/domain"
)

type AuthService interface {
	// Authenticate checks the credentials and returns a signed access token.
	Authenticate(ctx context.Context, email, password string) (string, error)
	// Authorize verifies the token and resolves its subject to a user.
	Authorize(ctx context.Context, token string) (*domain.User, error)
}

// PasswordHasher hashes and verifies stored credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashed, password string) bool
}

// TokenIssuer creates and verifies signed, time-limited bearer tokens.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Subject(token string) (string, error)
}
