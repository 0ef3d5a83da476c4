package container

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/gym-membership-directory/config"
	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

func memoryConfig() *config.Config {
	return &config.Config{
		AppName:        "gym-test",
		StoreDriver:    config.StoreMemory,
		IdentityDriver: config.IdentityLocal,
		LocalJWTSecret: "test-secret",
		LocalJWTTTL:    time.Minute,
	}
}

func TestBuild_MemoryLocal(t *testing.T) {
	ctx := context.Background()
	c, err := Build(ctx, memoryConfig(), helpers.NopLogger())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer c.Close()

	if c.Redis != nil || c.Index != nil || c.Photos != nil || c.Notifier != nil {
		t.Fatalf("optional services should be nil: %+v", c)
	}
	if c.Local == nil || c.Identity == nil {
		t.Fatal("local identity not wired")
	}

	ident, err := c.Identity.CreateUser(ctx, repo.NewAccount{Email: "asha@example.com", Password: "secret1", Name: "Asha", Role: entity.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	tok, _, err := c.Local.MintToken(ident)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}
	got, err := c.Identity.Verify(ctx, tok)
	if err != nil || got.ID != ident.ID {
		t.Fatalf("Verify=%+v err=%v", got, err)
	}

	if err := c.Members.Save(ctx, entity.Member{ID: "m1", Name: "Asha", Email: "asha@example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ms, err := c.Members.List(ctx)
	if err != nil || len(ms) != 1 {
		t.Fatalf("List=%v err=%v", ms, err)
	}
}

func TestBuild_RejectsBadDrivers(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown store", func(c *config.Config) { c.StoreDriver = "sqlite" }, "unknown STORE_DRIVER"},
		{"unknown identity", func(c *config.Config) { c.IdentityDriver = "ldap" }, "unknown IDENTITY_DRIVER"},
		{"gotrue without url", func(c *config.Config) { c.IdentityDriver = config.IdentityGoTrue }, "SUPABASE_URL"},
		{"redis without addr", func(c *config.Config) { c.StoreDriver = config.StoreRedis }, "REDIS_ADDR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := memoryConfig()
			tc.mutate(cfg)
			_, err := Build(context.Background(), cfg, helpers.NopLogger())
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err=%v, want %q", err, tc.want)
			}
		})
	}
}
