package kvstore

import (
	"context"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	"github.com/oksasatya/gym-membership-directory/internal/domain/repository"
)

const (
	memberPrefix  = "member:"
	profilePrefix = "user:"
)

func memberKey(id string) string  { return memberPrefix + id }
func profileKey(id string) string { return profilePrefix + id }

type MemberRepository struct {
	store Store
}

func NewMemberRepository(s Store) *MemberRepository {
	return &MemberRepository{store: s}
}

func (r *MemberRepository) Save(ctx context.Context, m entity.Member) error {
	return SetJSON(ctx, r.store, memberKey(m.ID), m)
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (entity.Member, error) {
	var m entity.Member
	ok, err := GetJSON(ctx, r.store, memberKey(id), &m)
	if err != nil {
		return entity.Member{}, err
	}
	if !ok {
		return entity.Member{}, repository.ErrNotFound
	}
	return m, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, memberKey(id))
}

func (r *MemberRepository) List(ctx context.Context) ([]entity.Member, error) {
	return ScanJSON[entity.Member](ctx, r.store, memberPrefix)
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
