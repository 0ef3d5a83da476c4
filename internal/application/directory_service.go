package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
)

const (
	dateLayout      = "2006-01-02"
	searchLimit     = 50
	maxIDGeneration = 5
)

// MemberInput is the caller-supplied part of a member record. Empty optional
// fields are filled by withDefaults.
type MemberInput struct {
	Name              string
	Email             string
	PhoneNumber       string
	SubscriptionStart string
	SubscriptionEnd   string
	Status            entity.MemberStatus
	MembershipType    entity.MembershipType
}

type DirectoryService struct {
	Repo repo.MemberRepository

	// Optional collaborators; nil disables the feature.
	Index    repo.MemberIndex
	Photos   repo.PhotoStore
	Notifier repo.Notifier

	Logger *logrus.Logger

	now   func() time.Time
	newID func() string
}

func NewDirectoryService(r repo.MemberRepository, index repo.MemberIndex, photos repo.PhotoStore, notifier repo.Notifier, logger *logrus.Logger) *DirectoryService {
	return &DirectoryService{
		Repo:     r,
		Index:    index,
		Photos:   photos,
		Notifier: notifier,
		Logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (in MemberInput) withDefaults() MemberInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if in.MembershipType == "" {
		in.MembershipType = entity.MembershipBasic
	}
	return in
}

func (in MemberInput) validate() error {
	details := map[string]string{}
	if in.Name == "" {
		details["name"] = "is required"
	}
	if in.Email == "" {
		details["email"] = "is required"
	}
	if len(details) > 0 {
		return validationError("Name and email are required", details)
	}

	switch in.Status {
	case entity.StatusActive, entity.StatusExpired, entity.StatusPending:
	default:
		details["status"] = "must be one of active, expired, pending"
	}
	switch in.MembershipType {
	case entity.MembershipBasic, entity.MembershipPremium, entity.MembershipVIP:
	default:
		details["membershipType"] = "must be one of basic, premium, vip"
	}
	for field, v := range map[string]string{"subscriptionStart": in.SubscriptionStart, "subscriptionEnd": in.SubscriptionEnd} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, v); err != nil {
			details[field] = "must be a date (YYYY-MM-DD)"
		}
	}
	if len(details) > 0 {
		return validationError("invalid member payload", details)
	}
	return nil
}

// UpsertMember creates a member, or updates it when existingID names a stored
// record. Updates keep the original createdAt and photo. An existingID that is
// not in the store creates a new record under that id.
func (s *DirectoryService) UpsertMember(ctx context.Context, in MemberInput, existingID string) (entity.Member, error) {
	in = in.withDefaults()
	if err := in.validate(); err != nil {
		return entity.Member{}, err
	}

	now := s.now().UTC()
	var (
		existing entity.Member
		found    bool
	)
	id := strings.TrimSpace(existingID)
	if id != "" {
		m, err := s.Repo.GetByID(ctx, id)
		switch {
		case err == nil:
			existing, found = m, true
		case errors.Is(err, repo.ErrNotFound):
		default:
			return entity.Member{}, fmt.Errorf("load member %s: %w", id, err)
		}
	} else {
		newID, err := s.freshID(ctx)
		if err != nil {
			return entity.Member{}, err
		}
		id = newID
	}

	m := entity.Member{
		ID:                id,
		Name:              in.Name,
		Email:             in.Email,
		PhoneNumber:       in.PhoneNumber,
		SubscriptionStart: in.SubscriptionStart,
		SubscriptionEnd:   in.SubscriptionEnd,
		Status:            in.Status,
		MembershipType:    in.MembershipType,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if found {
		m.CreatedAt = existing.CreatedAt
		m.PhotoURL = existing.PhotoURL
		m.UpdatedAt = notBefore(now, existing.UpdatedAt)
	}

	if err := s.Repo.Save(ctx, m); err != nil {
		return entity.Member{}, fmt.Errorf("save member %s: %w", id, err)
	}
	s.afterSave(ctx, m, !found)
	return m, nil
}

func (s *DirectoryService) freshID(ctx context.Context) (string, error) {
	for range maxIDGeneration {
		id := s.newID()
		_, err := s.Repo.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("check member id: %w", err)
		}
	}
	return "", errors.New("could not allocate a unique member id")
}

// DeleteMember removes a member. Deleting an unknown id succeeds.
func (s *DirectoryService) DeleteMember(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete member %s: %w", id, err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, id, "search index remove failed")
		}
	}
	return nil
}

func (s *DirectoryService) ListMembers(ctx context.Context) ([]entity.Member, error) {
	ms, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return ms, nil
}

// FindMemberByEmail scans the whole directory for the first exact
// (case-sensitive) email match. With several members sharing an email the
// result depends on store iteration order.
//
// TODO: replace the scan with an email -> member id secondary key once
// directories grow past a few thousand records.
func (s *DirectoryService) FindMemberByEmail(ctx context.Context, email string) (entity.Member, error) {
	ms, err := s.ListMembers(ctx)
	if err != nil {
		return entity.Member{}, err
	}
	for _, m := range ms {
		if m.Email == email {
			return m, nil
		}
	}
	return entity.Member{}, newError(ErrNotFound, "No subscription found for this account")
}

// Search uses the search index when configured and falls back to a
// case-insensitive substring match over the directory.
func (s *DirectoryService) Search(ctx context.Context, query string) ([]entity.Member, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, validationError("search query is required", map[string]string{"q": "is required"})
	}
	if s.Index != nil {
		ms, err := s.Index.Search(ctx, q, searchLimit)
		if err != nil {
			return nil, fmt.Errorf("search members: %w", err)
		}
		return ms, nil
	}

	all, err := s.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]entity.Member, 0)
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Email), needle) ||
			strings.Contains(m.PhoneNumber, q) {
			out = append(out, m)
		}
		if len(out) == searchLimit {
			break
		}
	}
	return out, nil
}

// UploadPhoto stores an image for an existing member and records its URL.
func (s *DirectoryService) UploadPhoto(ctx context.Context, id, filename, contentType string, r io.Reader) (entity.Member, error) {
	if s.Photos == nil {
		return entity.Member{}, errors.New("photo storage not configured")
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return entity.Member{}, validationError("photo must be an image", map[string]string{"file": "must be an image"})
	}
	m, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return entity.Member{}, newError(ErrNotFound, "Member not found")
	}
	if err != nil {
		return entity.Member{}, fmt.Errorf("load member %s: %w", id, err)
	}

	url, err := s.Photos.Upload(ctx, id, filename, contentType, r)
	if err != nil {
		return entity.Member{}, fmt.Errorf("upload photo for %s: %w", id, err)
	}
	m.PhotoURL = url
	m.UpdatedAt = notBefore(s.now().UTC(), m.UpdatedAt)
	if err := s.Repo.Save(ctx, m); err != nil {
		return entity.Member{}, fmt.Errorf("save member %s: %w", id, err)
	}
	s.afterSave(ctx, m, false)
	return m, nil
}

// afterSave runs best-effort side effects; failures are logged only.
func (s *DirectoryService) afterSave(ctx context.Context, m entity.Member, created bool) {
	if s.Index != nil {
		if err := s.Index.Index(ctx, m); err != nil {
			s.warn(err, m.ID, "search index update failed")
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.MemberSaved(ctx, m, created); err != nil {
			s.warn(err, m.ID, "member notification failed")
		}
	}
}

func (s *DirectoryService) warn(err error, memberID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("member_id", memberID).Warn(msg)
	}
}

func notBefore(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}
