package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
)

// ErrInvalidToken is returned by an IdentityProvider when a bearer token is
// rejected for any reason.
var ErrInvalidToken = errors.New("invalid token")

// ProviderError carries the message the identity provider returned when it
// refused an operation (for example a duplicate email at signup).
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string { return e.Message }

type NewAccount struct {
	Email    string
	Password string
	Name     string
	Role     entity.Role
}

// IdentityProvider is the external authentication service.
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (entity.Identity, error)
	// CreateUser registers a new identity with its email already confirmed.
	CreateUser(ctx context.Context, acc NewAccount) (entity.Identity, error)
}
