package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	repo "github.com/oksasatya/gym-membership-directory/internal/domain/repository"
	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/kvstore"
)

var errBoom = errors.New("boom")

// fakeIdentity maps tokens to identities and records created accounts.
type fakeIdentity struct {
	mu        sync.Mutex
	tokens    map[string]entity.Identity
	created   []repo.NewAccount
	createErr error
	nextID    string
}

func (f *fakeIdentity) Verify(_ context.Context, token string) (entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[token]
	if !ok {
		return entity.Identity{}, repo.ErrInvalidToken
	}
	return id, nil
}

func (f *fakeIdentity) CreateUser(_ context.Context, acc repo.NewAccount) (entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return entity.Identity{}, f.createErr
	}
	f.created = append(f.created, acc)
	return entity.Identity{ID: f.nextID, Email: acc.Email}, nil
}

type failingProfiles struct{}

func (failingProfiles) Create(context.Context, entity.Profile) error { return errBoom }
func (failingProfiles) GetByID(context.Context, string) (entity.Profile, error) {
	return entity.Profile{}, errBoom
}

type failingMembers struct{}

func (failingMembers) Save(context.Context, entity.Member) error { return errBoom }
func (failingMembers) GetByID(context.Context, string) (entity.Member, error) {
	return entity.Member{}, errBoom
}
func (failingMembers) Delete(context.Context, string) error { return errBoom }
func (failingMembers) List(context.Context) ([]entity.Member, error) {
	return nil, errBoom
}

type recordingIndex struct {
	indexed []string
	removed []string
	err     error
}

func (r *recordingIndex) Index(_ context.Context, m entity.Member) error {
	r.indexed = append(r.indexed, m.ID)
	return r.err
}

func (r *recordingIndex) Remove(_ context.Context, id string) error {
	r.removed = append(r.removed, id)
	return r.err
}

func (r *recordingIndex) Search(context.Context, string, int) ([]entity.Member, error) {
	return []entity.Member{{ID: "from-index"}}, r.err
}

type recordingNotifier struct {
	profiles []string
	members  []string
	created  []bool
	err      error
}

func (r *recordingNotifier) ProfileCreated(_ context.Context, p entity.Profile) error {
	r.profiles = append(r.profiles, p.ID)
	return r.err
}

func (r *recordingNotifier) MemberSaved(_ context.Context, m entity.Member, created bool) error {
	r.members = append(r.members, m.ID)
	r.created = append(r.created, created)
	return r.err
}

type stubPhotos struct {
	url  string
	body string
}

func (s *stubPhotos) Upload(_ context.Context, memberID, filename, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.body = string(b)
	return s.url + memberID + "/" + filename, nil
}

// clock returns successive times on every call.
type clock struct {
	t    time.Time
	step time.Duration
}

func (c *clock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func sequentialIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func newTestDirectory() (*DirectoryService, *kvstore.MemberRepository) {
	members := kvstore.NewMemberRepository(kvstore.NewMemory())
	s := NewDirectoryService(members, nil, nil, nil, nil)
	return s, members
}
