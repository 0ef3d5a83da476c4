package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
)

// fakeES keeps documents in memory and answers the handful of endpoints the
// index uses.
type fakeES struct {
	mu       sync.Mutex
	docs     map[string]json.RawMessage
	lastBody string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodPut:
		f.docs[parts[2]] = body
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodDelete:
		if _, ok := f.docs[parts[2]]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		delete(f.docs, parts[2])
		_, _ = w.Write([]byte(`{"result":"deleted"}`))
	case len(parts) == 2 && parts[1] == "_search":
		f.lastBody = string(body)
		hits := make([]map[string]json.RawMessage, 0, len(f.docs))
		for _, d := range f.docs {
			hits = append(hits, map[string]json.RawMessage{"_source": d})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"unexpected request"}`))
	}
}

func newTestIndex(t *testing.T) (*ESMemberIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{docs: map[string]json.RawMessage{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("elasticsearch.NewClient: %v", err)
	}
	return NewESMemberIndex(es, "members"), fake
}

func TestESMemberIndex_IndexSearchRemove(t *testing.T) {
	x, fake := newTestIndex(t)
	ctx := context.Background()

	m := entity.Member{ID: "m-1", Name: "Asha", Email: "asha@x.io", Status: entity.StatusActive, MembershipType: entity.MembershipVIP}
	if err := x.Index(ctx, m); err != nil {
		t.Fatalf("Index() err=%v", err)
	}

	got, err := x.Search(ctx, "asha", 10)
	if err != nil {
		t.Fatalf("Search() err=%v", err)
	}
	if len(got) != 1 || got[0].ID != "m-1" || got[0].MembershipType != entity.MembershipVIP {
		t.Fatalf("Search()=%+v", got)
	}
	if !strings.Contains(fake.lastBody, `"multi_match"`) || !strings.Contains(fake.lastBody, `"asha"`) {
		t.Errorf("query body=%s", fake.lastBody)
	}

	if err := x.Remove(ctx, "m-1"); err != nil {
		t.Fatalf("Remove() err=%v", err)
	}
	if err := x.Remove(ctx, "m-1"); err != nil {
		t.Fatalf("Remove(missing) err=%v", err)
	}
}
