// Package userresolver implements the user query operations on top of the
// user repository.
package userresolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/sdk/logger"
)

// Resolver is built once and shared by all requests. It holds no per-request
// state and performs no caching.
type Resolver struct {
	log  *logger.Logger
	repo *userrepo.Repository
}

func New(log *logger.Logger, repo *userrepo.Repository) *Resolver {
	return &Resolver{
		log:  log,
		repo: repo,
	}
}

// GetUser returns the user with exactly this id, or nil when there is none.
// An unknown id is not an error.
func (r *Resolver) GetUser(ctx context.Context, id string) (*userrepo.User, error) {
	u, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			r.log.DebugContext(ctx, "get user", "id", id, "found", false)
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetUsers returns every user in store order, possibly none.
func (r *Resolver) GetUsers(ctx context.Context) ([]userrepo.User, error) {
	users, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	if users == nil {
		users = []userrepo.User{}
	}
	return users, nil
}
