// Package userrepo defines the user record and read access to a user store.
package userrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/usergraph/sdk/logger"
)

// ErrNotFound is returned by a Storer when no record has the requested id.
// It signals absence, not failure.
var ErrNotFound = errors.New("user not found")

// Storer is the read-only contract a user store satisfies.
type Storer interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, ID string) (User, error)
}

type Repository struct {
	log    *logger.Logger
	storer Storer
}

func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns every record in store order.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "user repository list", "err", err)
		return nil, fmt.Errorf("user repository list: %w", err)
	}

	return records, nil
}

// GetByID returns the record with exactly this id. A miss is reported as an
// error matching ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, ID string) (User, error) {
	record, err := r.storer.GetByID(ctx, ID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.ErrorContext(ctx, "user repository get by id", "id", ID, "err", err)
		}
		return User{}, fmt.Errorf("user repository get by id: %w", err)
	}
	return record, nil
}
