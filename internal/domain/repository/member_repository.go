package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a record is absent.
var ErrNotFound = errors.New("record not found")

// MemberRepository persists member records keyed by member id.
// List order is whatever the backing store yields and is not stable.
type MemberRepository interface {
	Save(ctx context.Context, m entity.Member) error
	GetByID(ctx context.Context, id string) (entity.Member, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Member, error)
}

// ProfileRepository persists profiles keyed by user id. Profiles are never
// updated or deleted.
type ProfileRepository interface {
	Create(ctx context.Context, p entity.Profile) error
	GetByID(ctx context.Context, id string) (entity.Profile, error)
}
