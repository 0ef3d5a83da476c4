package main

import (
	"bytes"
	"strings"
	"testing"
)

func seedEnv(t *testing.T, identityDriver string) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("IDENTITY_DRIVER", identityDriver)
	t.Setenv("LOCAL_JWT_SECRET", "seed-test-secret")
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")
	t.Setenv("ELASTICSEARCH_ADDRS", "")
	t.Setenv("GCS_BUCKET", "")
	t.Setenv("RABBITMQ_URL", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAdminCommand(t *testing.T) {
	seedEnv(t, "local")
	out, err := run(t, "admin", "--email", "asha@gym.example", "--password", "secret123", "--name", "Asha")
	if err != nil {
		t.Fatalf("admin err=%v", err)
	}
	if !strings.Contains(out, "created admin:") || !strings.Contains(out, "email=asha@gym.example") {
		t.Fatalf("out=%q", out)
	}
}

func TestAdminCommand_RequiresFlags(t *testing.T) {
	seedEnv(t, "local")
	if _, err := run(t, "admin", "--email", "asha@gym.example"); err == nil {
		t.Fatal("expected missing flag error")
	}
}

func TestTokenCommand(t *testing.T) {
	seedEnv(t, "local")
	out, err := run(t, "token", "--id", "user-1", "--email", "asha@gym.example")
	if err != nil {
		t.Fatalf("token err=%v", err)
	}
	tok := strings.SplitN(out, "\n", 2)[0]
	if strings.Count(tok, ".") != 2 || !strings.Contains(out, "expires_at=") {
		t.Fatalf("out=%q", out)
	}
}
