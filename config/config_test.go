package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "IDENTITY_DRIVER", "LOCAL_JWT_TTL", "ALLOW_ADMIN_SIGNUP", "ES_MEMBERS_INDEX"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.StoreDriver != StoreRedis || c.IdentityDriver != IdentityGoTrue {
		t.Errorf("drivers store=%q identity=%q", c.StoreDriver, c.IdentityDriver)
	}
	if c.LocalJWTTTL != time.Hour || !c.AllowAdminSignup || c.ESMembersIndex != "members" {
		t.Errorf("defaults=%+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("LOCAL_JWT_TTL", "15m")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "false")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	c := Load()
	if c.StoreDriver != StorePostgres {
		t.Errorf("StoreDriver=%q", c.StoreDriver)
	}
	if c.LocalJWTTTL != 15*time.Minute || c.AllowAdminSignup {
		t.Errorf("ttl=%v allowAdmin=%v", c.LocalJWTTTL, c.AllowAdminSignup)
	}
	if c.DBMaxConns != 10 {
		t.Errorf("DBMaxConns=%d, want default on bad input", c.DBMaxConns)
	}
	got := c.CORSOrigins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("CORSOrigins()=%v", got)
	}
}
