package kvstore

import (
	"context"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	"github.com/oksasatya/gym-membership-directory/internal/domain/repository"
)

type ProfileRepository struct {
	store Store
}

func NewProfileRepository(s Store) *ProfileRepository {
	return &ProfileRepository{store: s}
}

// Create writes the profile under user:<id>. A second call for the same id
// overwrites; callers only create a profile right after the identity exists.
func (r *ProfileRepository) Create(ctx context.Context, p entity.Profile) error {
	return SetJSON(ctx, r.store, profileKey(p.ID), p)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (entity.Profile, error) {
	var p entity.Profile
	ok, err := GetJSON(ctx, r.store, profileKey(id), &p)
	if err != nil {
		return entity.Profile{}, err
	}
	if !ok {
		return entity.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
