// Package userpgxstore reads user records from Postgres. It is used once at
// startup to snapshot the users table into the in-memory store.
package userpgxstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/infrastructure/databases/postgresdb"
	"github.com/jrazmi/usergraph/sdk/logger"
)

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Store struct {
	log  *logger.Logger
	pool Querier
}

func NewStore(log *logger.Logger, pool Querier) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// row mirrors the users table; email is nullable there.
type row struct {
	UserID string  `db:"user_id"`
	Name   string  `db:"name"`
	Email  *string `db:"email"`
}

// List returns every user ordered by creation time, then id.
func (s *Store) List(ctx context.Context) ([]userrepo.User, error) {
	query := `SELECT user_id, name, email
		FROM users
		ORDER BY created_at, user_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, fmt.Errorf("collect users: %w", postgresdb.HandlePgError(err))
	}

	users := make([]userrepo.User, len(records))
	for i, r := range records {
		users[i] = toUser(r)
	}

	s.log.InfoContext(ctx, "loaded users from postgres", "count", len(users))
	return users, nil
}

func toUser(r row) userrepo.User {
	u := userrepo.User{ID: r.UserID, Name: r.Name}
	if r.Email != nil {
		u.Email = *r.Email
	}
	return u
}
