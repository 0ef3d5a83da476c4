package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
)

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     entity.Role
}

// SignupService creates the identity-provider account first and the local
// profile second. There is no rollback: a profile write failure leaves an
// identity without a profile, which is logged.
type SignupService struct {
	Identity repo.IdentityProvider
	Profiles repo.ProfileRepository
	Notifier repo.Notifier
	Logger   *logrus.Logger

	// AllowAdmin lets self-service signups request the admin role.
	AllowAdmin bool

	now func() time.Time
}

func NewSignupService(identity repo.IdentityProvider, profiles repo.ProfileRepository, notifier repo.Notifier, allowAdmin bool, logger *logrus.Logger) *SignupService {
	return &SignupService{
		Identity:   identity,
		Profiles:   profiles,
		Notifier:   notifier,
		Logger:     logger,
		AllowAdmin: allowAdmin,
		now:        time.Now,
	}
}

func (s *SignupService) Signup(ctx context.Context, in SignupInput) (entity.Profile, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Password == "" || in.Name == "" {
		details := map[string]string{}
		for field, v := range map[string]string{"email": in.Email, "password": in.Password, "name": in.Name} {
			if v == "" {
				details[field] = "is required"
			}
		}
		return entity.Profile{}, validationError("Email, password, and name are required", details)
	}

	switch in.Role {
	case "":
		in.Role = entity.RoleMember
	case entity.RoleMember:
	case entity.RoleAdmin:
		if !s.AllowAdmin {
			return entity.Profile{}, validationError("admin signup is disabled", map[string]string{"role": "admin is not allowed"})
		}
	default:
		return entity.Profile{}, validationError("role must be member or admin", map[string]string{"role": "must be member or admin"})
	}

	ident, err := s.Identity.CreateUser(ctx, repo.NewAccount{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Role:     in.Role,
	})
	if err != nil {
		var pe *repo.ProviderError
		if errors.As(err, &pe) {
			return entity.Profile{}, &Error{Kind: ErrUpstream, Message: pe.Message, Err: err}
		}
		return entity.Profile{}, fmt.Errorf("create identity: %w", err)
	}

	profile := entity.Profile{
		ID:        ident.ID,
		Email:     in.Email,
		Name:      in.Name,
		Role:      in.Role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Profiles.Create(ctx, profile); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"user_id": ident.ID,
				"email":   in.Email,
			}).Error("profile write failed after identity creation; identity left without profile")
		}
		return entity.Profile{}, fmt.Errorf("create profile %s: %w", ident.ID, err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.ProfileCreated(ctx, profile); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", profile.ID).Warn("welcome notification failed")
		}
	}
	return profile, nil
}
