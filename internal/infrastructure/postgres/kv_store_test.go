package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func newMockStore(t *testing.T) (*KVStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewKVStore(mock), mock
}

func TestKVStore_GetMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key = $1")).
		WithArgs("member:nope").
		WillReturnRows(pgxmock.NewRows([]string{"value"}))

	_, ok, err := s.Get(context.Background(), "member:nope")
	if err != nil || ok {
		t.Fatalf("Get() ok=%v err=%v, want ok=false err=nil", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestKVStore_GetFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key = $1")).
		WithArgs("member:m1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"m1"}`)))

	b, ok, err := s.Get(context.Background(), "member:m1")
	if err != nil || !ok {
		t.Fatalf("Get() ok=%v err=%v", ok, err)
	}
	if string(b) != `{"id":"m1"}` {
		t.Fatalf("Get()=%s", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestKVStore_GetPropagatesError(t *testing.T) {
	s, mock := newMockStore(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("member:m1").
		WillReturnError(boom)

	if _, _, err := s.Get(context.Background(), "member:m1"); !errors.Is(err, boom) {
		t.Fatalf("Get() err=%v, want %v", err, boom)
	}
}

func TestKVStore_SetUpserts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO kv_store .* ON CONFLICT \\(key\\) DO UPDATE").
		WithArgs("user:u1", `{"role":"admin"}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := s.Set(context.Background(), "user:u1", []byte(`{"role":"admin"}`)); err != nil {
		t.Fatalf("Set() err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestKVStore_DeleteMissingIsNotAnError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE key = $1")).
		WithArgs("member:gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := s.Delete(context.Background(), "member:gone"); err != nil {
		t.Fatalf("Delete() err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestKVStore_ScanPrefixEscapesLike(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"key", "value"}).
		AddRow("member_a:1", []byte(`{"n":1}`)).
		AddRow("member_a:2", []byte(`{"n":2}`))
	mock.ExpectQuery("FROM kv_store").
		WithArgs(`member\_a:%`).
		WillReturnRows(rows)

	got, err := s.ScanPrefix(context.Background(), "member_a:")
	if err != nil {
		t.Fatalf("ScanPrefix() err=%v", err)
	}
	if len(got) != 2 || got[0].Key != "member_a:1" || string(got[1].Value) != `{"n":2}` {
		t.Fatalf("ScanPrefix()=%v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestKVStore_ScanPrefixSurfacesStreamError(t *testing.T) {
	s, mock := newMockStore(t)

	boom := errors.New("stream interrupted")
	rows := pgxmock.NewRows([]string{"key", "value"}).
		AddRow("member:1", []byte(`{}`)).
		CloseError(boom)
	mock.ExpectQuery("FROM kv_store").
		WithArgs(`member:%`).
		WillReturnRows(rows)

	if _, err := s.ScanPrefix(context.Background(), "member:"); !errors.Is(err, boom) {
		t.Fatalf("ScanPrefix() err=%v, want %v", err, boom)
	}
}
