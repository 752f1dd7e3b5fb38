package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jrazmi/usergraph/app/tooling/commands"
	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/core/repositories/userrepo/stores/userpgxstore"
	"github.com/jrazmi/usergraph/core/repositories/userrepo/userseed"
	"github.com/jrazmi/usergraph/infrastructure/databases/postgresdb"
	"github.com/jrazmi/usergraph/sdk/environment"
	"github.com/jrazmi/usergraph/sdk/logger"
)

var build = "develop"
var appName = "TOOLING"

func processCommands(ctx context.Context, log *logger.Logger, command string, args []string) error {
	switch command {
	case "migrate":
		pg, err := openPostgres(ctx, log)
		if err != nil {
			return err
		}
		defer pg.Close()

		log.InfoContext(ctx, "running migration")
		if err := commands.Migrate(ctx, log.Logger, pg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil

	case "query", "schema":
		users, err := seedUsers(ctx, log)
		if err != nil {
			return err
		}
		exec, err := commands.NewExecutor(log, users)
		if err != nil {
			return fmt.Errorf("building executor: %w", err)
		}

		if command == "schema" {
			return commands.PrintSchema(ctx, exec, os.Stdout)
		}
		if err := commands.Query(ctx, log, args, exec, os.Stdout); err != nil && !errors.Is(err, commands.ErrHelp) {
			return fmt.Errorf("query failed: %w", err)
		}
		return nil

	default:
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate - create the users table and seed rows in the database")
	fmt.Println("  query   - execute a GraphQL document against the seeded users")
	fmt.Println("  schema  - print the GraphQL schema")
	fmt.Println()
	fmt.Println("Use 'go run app/tooling/main.go <command> --help' for command-specific help.")
}

func openPostgres(ctx context.Context, log *logger.Logger) (*postgresdb.Pool, error) {
	pg, err := postgresdb.NewFromEnv(ctx, appName,
		postgresdb.WithLogger(log.Logger),
		postgresdb.WithTracer(postgresdb.NewLoggingQueryTracer(log.Logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring postgres support: %w", err)
	}
	log.InfoContext(ctx, "init", "service", "postgres")
	return pg, nil
}

func seedUsers(ctx context.Context, log *logger.Logger) ([]userrepo.User, error) {
	var cfg userseed.Config
	if err := environment.ParseEnvTags(appName, &cfg); err != nil {
		return nil, fmt.Errorf("seed config: %w", err)
	}
	if cfg.Source != userseed.SourcePostgres {
		return userseed.Load(ctx, cfg, nil)
	}

	pg, err := openPostgres(ctx, log)
	if err != nil {
		return nil, err
	}
	defer pg.Close()

	return userseed.Load(ctx, cfg, userpgxstore.NewStore(log, pg))
}

func run(ctx context.Context, log *logger.Logger) error {
	log.DebugContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		args := []string{}
		if len(os.Args) > 2 {
			args = os.Args[2:]
		}
		done <- processCommands(ctx, log, command, args)
	}()

	select {
	case err := <-done:
		return err

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		cancel()

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()

		select {
		case err := <-done:
			return err
		case <-shutdownCtx.Done():
			return fmt.Errorf("shutdown timeout: %w", shutdownCtx.Err())
		}
	}
}

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if err = run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}
