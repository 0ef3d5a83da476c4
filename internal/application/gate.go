package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
)

// Gate authenticates bearer tokens and enforces the admin role.
type Gate struct {
	Identity repo.IdentityProvider
	Profiles repo.ProfileRepository
}

func NewGate(identity repo.IdentityProvider, profiles repo.ProfileRepository) *Gate {
	return &Gate{Identity: identity, Profiles: profiles}
}

func (g *Gate) Authenticate(ctx context.Context, token string) (entity.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entity.Identity{}, newError(ErrUnauthenticated, "Unauthorized - no token provided")
	}
	ident, err := g.Identity.Verify(ctx, token)
	if err != nil {
		return entity.Identity{}, &Error{Kind: ErrUnauthenticated, Message: "Unauthorized - invalid token", Err: err}
	}
	if ident.ID == "" {
		return entity.Identity{}, newError(ErrUnauthenticated, "Unauthorized - invalid token")
	}
	return ident, nil
}

// RequireAdmin returns the caller's profile when it carries the admin role.
// A caller without a profile is treated as a non-admin.
func (g *Gate) RequireAdmin(ctx context.Context, ident entity.Identity) (entity.Profile, error) {
	p, err := g.Profiles.GetByID(ctx, ident.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return entity.Profile{}, newError(ErrForbidden, "Forbidden - admin access required")
	}
	if err != nil {
		return entity.Profile{}, fmt.Errorf("load profile %s: %w", ident.ID, err)
	}
	if !p.IsAdmin() {
		return entity.Profile{}, newError(ErrForbidden, "Forbidden - admin access required")
	}
	return p, nil
}
