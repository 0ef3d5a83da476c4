// Package kvtest holds the behavioral contract every kvstore.Store adapter
// must satisfy.
package kvtest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/kvstore"
)

type CleanupFunc = func()

type StoreFactory func(t *testing.T) (kvstore.Store, CleanupFunc)

func RunStore(t *testing.T, newStore StoreFactory) {
	t.Helper()
	ctx := context.Background()

	s, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Unique namespace so adapters backed by a shared server do not collide.
	ns := "kvtest:" + uuid.NewString() + ":"

	if _, ok, err := s.Get(ctx, ns+"missing"); err != nil || ok {
		t.Fatalf("Get(missing) ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	if err := s.Set(ctx, ns+"member:a", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("Set a: %v", err)
	}
	got, ok, err := s.Get(ctx, ns+"member:a")
	if err != nil || !ok {
		t.Fatalf("Get a ok=%v err=%v", ok, err)
	}
	if string(got) != `{"n":1}` {
		t.Fatalf("Get a=%s", got)
	}

	// Overwrite semantics.
	if err := s.Set(ctx, ns+"member:a", []byte(`{"n":2}`)); err != nil {
		t.Fatalf("Set a overwrite: %v", err)
	}
	got, _, _ = s.Get(ctx, ns+"member:a")
	if string(got) != `{"n":2}` {
		t.Fatalf("Get a after overwrite=%s", got)
	}

	if err := s.Set(ctx, ns+"member:b", []byte(`{"n":3}`)); err != nil {
		t.Fatalf("Set b: %v", err)
	}
	if err := s.Set(ctx, ns+"user:a", []byte(`{"n":4}`)); err != nil {
		t.Fatalf("Set user: %v", err)
	}
	// Glob and LIKE metacharacters in the prefix must match literally.
	if err := s.Set(ctx, ns+"member_x", []byte(`{"n":5}`)); err != nil {
		t.Fatalf("Set member_x: %v", err)
	}

	entries, err := s.ScanPrefix(ctx, ns+"member:")
	if err != nil {
		t.Fatalf("ScanPrefix: %v", err)
	}
	keys := map[string]string{}
	for _, e := range entries {
		keys[e.Key] = string(e.Value)
	}
	if len(keys) != 2 || keys[ns+"member:a"] != `{"n":2}` || keys[ns+"member:b"] != `{"n":3}` {
		t.Fatalf("ScanPrefix(member:)=%v", keys)
	}

	entries, err = s.ScanPrefix(ctx, ns+"member_")
	if err != nil {
		t.Fatalf("ScanPrefix(member_): %v", err)
	}
	if len(entries) != 1 || entries[0].Key != ns+"member_x" {
		t.Fatalf("ScanPrefix(member_)=%v, want only member_x", entries)
	}

	// Delete is idempotent.
	if err := s.Delete(ctx, ns+"member:a"); err != nil {
		t.Fatalf("Delete a: %v", err)
	}
	if err := s.Delete(ctx, ns+"member:a"); err != nil {
		t.Fatalf("Delete a again: %v", err)
	}
	if _, ok, _ := s.Get(ctx, ns+"member:a"); ok {
		t.Fatalf("Get a after delete: ok=true")
	}
	entries, err = s.ScanPrefix(ctx, ns+"member:")
	if err != nil {
		t.Fatalf("ScanPrefix after delete: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != ns+"member:b" {
		t.Fatalf("ScanPrefix after delete=%v", entries)
	}

	for _, k := range []string{"member:b", "user:a", "member_x"} {
		_ = s.Delete(ctx, ns+k)
	}
}
