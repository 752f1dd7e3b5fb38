// Package usermemstore is an immutable in-memory user store. All state is
// fixed at construction, so any number of goroutines may read it without
// locking. Adding a write path requires adding synchronization here.
package usermemstore

import (
	"context"
	"slices"

	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/sdk/logger"
)

type Store struct {
	log   *logger.Logger
	users []userrepo.User
	index map[string]int
}

// NewStore copies users into a new store, keeping their order. When several
// records share an id, lookups resolve to the first one.
func NewStore(log *logger.Logger, users []userrepo.User) *Store {
	s := &Store{
		log:   log,
		users: slices.Clone(users),
		index: make(map[string]int, len(users)),
	}
	if s.users == nil {
		s.users = []userrepo.User{}
	}

	for i, u := range s.users {
		if first, ok := s.index[u.ID]; ok {
			log.Warn("duplicate user id in seed data, keeping first record",
				"id", u.ID, "first_position", first, "position", i)
			continue
		}
		s.index[u.ID] = i
	}

	return s
}

// List returns a copy of every record in store order.
func (s *Store) List(ctx context.Context) ([]userrepo.User, error) {
	return slices.Clone(s.users), nil
}

// GetByID returns a copy of the record whose id equals ID byte for byte.
func (s *Store) GetByID(ctx context.Context, ID string) (userrepo.User, error) {
	i, ok := s.index[ID]
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	return s.users[i], nil
}

// Len reports the number of records held, duplicates included.
func (s *Store) Len() int {
	return len(s.users)
}
