package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
)

type ProfileService struct {
	Repo repo.ProfileRepository
}

func NewProfileService(r repo.ProfileRepository) *ProfileService {
	return &ProfileService{Repo: r}
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (entity.Profile, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return entity.Profile{}, newError(ErrNotFound, "Profile not found")
	}
	if err != nil {
		return entity.Profile{}, fmt.Errorf("load profile %s: %w", id, err)
	}
	return p, nil
}
