package usermemstore_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/core/repositories/userrepo/stores/usermemstore"
	"github.com/jrazmi/usergraph/sdk/logger"
	"golang.org/x/sync/errgroup"
)

var _ userrepo.Storer = (*usermemstore.Store)(nil)

func newStore(users []userrepo.User) *usermemstore.Store {
	return usermemstore.NewStore(logger.NewDefault(logger.WithOutput(io.Discard)), users)
}

func seed() []userrepo.User {
	return []userrepo.User{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "Bob"},
	}
}

func TestStore_GetByID(t *testing.T) {
	s := newStore(seed())
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		want    userrepo.User
		wantErr error
	}{
		{"match", "2", userrepo.User{ID: "2", Name: "Bob"}, nil},
		{"miss", "3", userrepo.User{}, userrepo.ErrNotFound},
		{"empty id", "", userrepo.User{}, userrepo.ErrNotFound},
		{"no case folding", "ALICE", userrepo.User{}, userrepo.ErrNotFound},
		{"no trimming", " 1", userrepo.User{}, userrepo.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.GetByID(ctx, tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GetByID(%q) error = %v, want %v", tt.id, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetByID(%q) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

func TestStore_List(t *testing.T) {
	s := newStore(seed())

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(got, seed()) {
		t.Errorf("expected seed order %v, got %v", seed(), got)
	}
	if s.Len() != 2 {
		t.Errorf("expected len 2, got %d", s.Len())
	}
}

func TestStore_Empty(t *testing.T) {
	for _, users := range [][]userrepo.User{nil, {}} {
		s := newStore(users)

		got, err := s.List(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}

		if _, err := s.GetByID(context.Background(), "anything"); !errors.Is(err, userrepo.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	}
}

func TestStore_DuplicateIDsFirstMatch(t *testing.T) {
	s := newStore([]userrepo.User{
		{ID: "1", Name: "Alice"},
		{ID: "1", Name: "Impostor"},
	})

	got, err := s.GetByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("expected first record, got %+v", got)
	}

	all, _ := s.List(context.Background())
	if len(all) != 2 {
		t.Errorf("expected list to keep both records, got %d", len(all))
	}
}

func TestStore_CallersCannotMutate(t *testing.T) {
	users := seed()
	s := newStore(users)

	users[0].Name = "Mallory"
	listed, _ := s.List(context.Background())
	listed[1].Name = "Eve"

	got, _ := s.GetByID(context.Background(), "1")
	if got.Name != "Alice" {
		t.Errorf("seed slice mutation leaked into store: %+v", got)
	}
	again, _ := s.List(context.Background())
	if again[1].Name != "Bob" {
		t.Errorf("list result mutation leaked into store: %+v", again[1])
	}
}

func TestStore_ConcurrentReads(t *testing.T) {
	users := make([]userrepo.User, 100)
	for i := range users {
		users[i] = userrepo.User{ID: fmt.Sprintf("%d", i), Name: fmt.Sprintf("user-%d", i)}
	}
	s := newStore(users)

	var g errgroup.Group
	for w := range 16 {
		g.Go(func() error {
			for i := range users {
				id := fmt.Sprintf("%d", (i+w)%len(users))
				u, err := s.GetByID(context.Background(), id)
				if err != nil {
					return err
				}
				if u.ID != id {
					return fmt.Errorf("lookup %s returned %s", id, u.ID)
				}
			}
			all, err := s.List(context.Background())
			if err != nil {
				return err
			}
			if len(all) != len(users) {
				return fmt.Errorf("expected %d users, got %d", len(users), len(all))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
