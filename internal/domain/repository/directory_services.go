package repository

import (
	"context"
	"io"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
)

// MemberIndex is an optional secondary index used for directory search.
type MemberIndex interface {
	Index(ctx context.Context, m entity.Member) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int) ([]entity.Member, error)
}

// PhotoStore uploads member photos and returns their public URL.
type PhotoStore interface {
	Upload(ctx context.Context, memberID, filename, contentType string, r io.Reader) (string, error)
}

// Notifier announces directory events to members. Implementations must not
// block the request on delivery.
type Notifier interface {
	ProfileCreated(ctx context.Context, p entity.Profile) error
	MemberSaved(ctx context.Context, m entity.Member, created bool) error
}
