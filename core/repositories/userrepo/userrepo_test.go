package userrepo_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/sdk/logger"
)

type stubStorer struct {
	users   []userrepo.User
	listErr error
	getErr  error
	calls   int
}

func (s *stubStorer) List(ctx context.Context) ([]userrepo.User, error) {
	s.calls++
	return s.users, s.listErr
}

func (s *stubStorer) GetByID(ctx context.Context, ID string) (userrepo.User, error) {
	s.calls++
	if s.getErr != nil {
		return userrepo.User{}, s.getErr
	}
	for _, u := range s.users {
		if u.ID == ID {
			return u, nil
		}
	}
	return userrepo.User{}, userrepo.ErrNotFound
}

func newRepo(s userrepo.Storer) *userrepo.Repository {
	return userrepo.NewRepository(logger.NewDefault(logger.WithOutput(io.Discard)), s)
}

func TestRepository_GetByID(t *testing.T) {
	store := &stubStorer{users: []userrepo.User{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}}}
	repo := newRepo(store)

	u, err := repo.GetByID(context.Background(), "2")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u.Name != "Bob" {
		t.Errorf("expected Bob, got %+v", u)
	}

	_, err = repo.GetByID(context.Background(), "3")
	if !errors.Is(err, userrepo.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_StoreFailure(t *testing.T) {
	unavailable := errors.New("store unavailable")
	repo := newRepo(&stubStorer{listErr: unavailable, getErr: unavailable})

	if _, err := repo.List(context.Background()); !errors.Is(err, unavailable) {
		t.Errorf("expected wrapped list error, got %v", err)
	}

	_, err := repo.GetByID(context.Background(), "1")
	if !errors.Is(err, unavailable) {
		t.Errorf("expected wrapped get error, got %v", err)
	}
	if errors.Is(err, userrepo.ErrNotFound) {
		t.Error("store failure must not read as absence")
	}
}

func TestRepository_ListDelegates(t *testing.T) {
	store := &stubStorer{users: []userrepo.User{{ID: "1", Name: "Alice"}}}
	repo := newRepo(store)

	for range 3 {
		users, err := repo.List(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(users) != 1 {
			t.Fatalf("expected 1 user, got %d", len(users))
		}
	}
	if store.calls != 3 {
		t.Errorf("expected each call to reach the store, got %d calls", store.calls)
	}
}

func TestUser_HasEmail(t *testing.T) {
	if (userrepo.User{ID: "1"}).HasEmail() {
		t.Error("expected no email")
	}
	if !(userrepo.User{ID: "1", Email: "a@example.com"}).HasEmail() {
		t.Error("expected email")
	}
}
