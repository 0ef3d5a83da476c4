package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/kvstore"
	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

const (
	credentialPrefix  = "credential:"
	minPasswordLength = 6
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type credential struct {
	UserID       string      `json:"userId"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"passwordHash"`
	Name         string      `json:"name"`
	Role         entity.Role `json:"role"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Local is a self-hosted identity provider: bcrypt credentials live in the
// same key-value store as the directory and tokens are HS256 JWTs.
type Local struct {
	store  kvstore.Store
	tokens *helpers.TokenManager

	mu    sync.Mutex
	newID func() string
}

func NewLocal(store kvstore.Store, tokens *helpers.TokenManager) *Local {
	return &Local{store: store, tokens: tokens, newID: uuid.NewString}
}

func credentialKey(email string) string {
	return credentialPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (l *Local) Verify(_ context.Context, token string) (entity.Identity, error) {
	c, err := l.tokens.Parse(token)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: %v", repo.ErrInvalidToken, err)
	}
	return entity.Identity{ID: c.Subject, Email: c.Email}, nil
}

func (l *Local) CreateUser(ctx context.Context, acc repo.NewAccount) (entity.Identity, error) {
	if len(acc.Password) < minPasswordLength {
		return entity.Identity{}, &repo.ProviderError{Message: fmt.Sprintf("Password should be at least %d characters.", minPasswordLength)}
	}
	hash, err := helpers.HashPassword(acc.Password)
	if err != nil {
		return entity.Identity{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := credentialKey(acc.Email)
	var existing credential
	found, err := kvstore.GetJSON(ctx, l.store, key, &existing)
	if err != nil {
		return entity.Identity{}, err
	}
	if found {
		return entity.Identity{}, &repo.ProviderError{Message: "User already registered"}
	}

	c := credential{
		UserID:       l.newID(),
		Email:        acc.Email,
		PasswordHash: hash,
		Name:         acc.Name,
		Role:         acc.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := kvstore.SetJSON(ctx, l.store, key, c); err != nil {
		return entity.Identity{}, err
	}
	return entity.Identity{ID: c.UserID, Email: c.Email}, nil
}

// SignIn checks a password and issues an access token.
func (l *Local) SignIn(ctx context.Context, email, password string) (string, time.Time, error) {
	var c credential
	found, err := kvstore.GetJSON(ctx, l.store, credentialKey(email), &c)
	if err != nil {
		return "", time.Time{}, err
	}
	if !found || !helpers.PasswordMatches(c.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return l.tokens.Generate(c.UserID, c.Email)
}

// MintToken issues a token for an identity without a password check.
func (l *Local) MintToken(id entity.Identity) (string, time.Time, error) {
	return l.tokens.Generate(id.ID, id.Email)
}

var _ repo.IdentityProvider = (*Local)(nil)
