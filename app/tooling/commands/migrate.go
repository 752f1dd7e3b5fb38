package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrazmi/usergraph/infrastructure/databases/postgresdb"
	"github.com/jrazmi/usergraph/schema"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// Migrate creates the users table and its seed rows.
func Migrate(ctx context.Context, log *slog.Logger, pool *postgresdb.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "migration started", "dir", schema.MigrationsDir)

	if err := postgresdb.Migrate(ctx, log, pool, schema.MigrationsFS, schema.MigrationsDir); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}
