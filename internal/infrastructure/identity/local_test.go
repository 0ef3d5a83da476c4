package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/kvstore"
	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

func newTestLocal() *Local {
	return NewLocal(kvstore.NewMemory(), helpers.NewTokenManager("test-secret", time.Hour, "gym-test"))
}

func TestLocal_CreateSignInVerify(t *testing.T) {
	l := newTestLocal()
	ctx := context.Background()

	id, err := l.CreateUser(ctx, repo.NewAccount{Email: "asha@x.io", Password: "pw123456", Name: "Asha", Role: entity.RoleMember})
	if err != nil {
		t.Fatalf("CreateUser() err=%v", err)
	}

	tok, _, err := l.SignIn(ctx, "ASHA@x.io", "pw123456")
	if err != nil {
		t.Fatalf("SignIn() err=%v", err)
	}
	got, err := l.Verify(ctx, tok)
	if err != nil {
		t.Fatalf("Verify() err=%v", err)
	}
	if got != id {
		t.Fatalf("Verify()=%+v, want %+v", got, id)
	}

	if _, _, err := l.SignIn(ctx, "asha@x.io", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("SignIn(wrong password) err=%v", err)
	}
	if _, _, err := l.SignIn(ctx, "nobody@x.io", "pw123456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("SignIn(unknown) err=%v", err)
	}
}

func TestLocal_CreateUserRejections(t *testing.T) {
	l := newTestLocal()
	ctx := context.Background()
	acc := repo.NewAccount{Email: "asha@x.io", Password: "pw123456", Name: "Asha", Role: entity.RoleMember}
	if _, err := l.CreateUser(ctx, acc); err != nil {
		t.Fatalf("first CreateUser() err=%v", err)
	}

	var pe *repo.ProviderError
	acc.Email = "Asha@X.io"
	if _, err := l.CreateUser(ctx, acc); !errors.As(err, &pe) || pe.Message != "User already registered" {
		t.Fatalf("duplicate err=%v", err)
	}

	short := repo.NewAccount{Email: "b@x.io", Password: "123", Name: "B", Role: entity.RoleMember}
	if _, err := l.CreateUser(ctx, short); !errors.As(err, &pe) {
		t.Fatalf("short password err=%v, want ProviderError", err)
	}
}

func TestLocal_VerifyRejectsForeignTokens(t *testing.T) {
	l := newTestLocal()
	other := helpers.NewTokenManager("other-secret", time.Hour, "gym-test")
	tok, _, _ := other.Generate("u-1", "a@x.io")

	if _, err := l.Verify(context.Background(), tok); !errors.Is(err, repo.ErrInvalidToken) {
		t.Fatalf("Verify(foreign) err=%v, want ErrInvalidToken", err)
	}
}

func TestLocal_MintToken(t *testing.T) {
	l := newTestLocal()
	want := entity.Identity{ID: "u-9", Email: "admin@gym.io"}
	tok, _, err := l.MintToken(want)
	if err != nil {
		t.Fatalf("MintToken() err=%v", err)
	}
	got, err := l.Verify(context.Background(), tok)
	if err != nil || got != want {
		t.Fatalf("Verify()=%+v err=%v", got, err)
	}
}
