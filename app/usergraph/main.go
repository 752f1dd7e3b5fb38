package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jrazmi/usergraph/app/usergraph/api"
	"github.com/jrazmi/usergraph/app/usergraph/config"
	"github.com/jrazmi/usergraph/bridge/graphqlbridge"
	"github.com/jrazmi/usergraph/bridge/scaffolding/mid"
	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/core/repositories/userrepo/stores/usermemstore"
	"github.com/jrazmi/usergraph/core/repositories/userrepo/stores/userpgxstore"
	"github.com/jrazmi/usergraph/core/repositories/userrepo/userseed"
	"github.com/jrazmi/usergraph/core/resolvers/userresolver"
	"github.com/jrazmi/usergraph/infrastructure/databases/postgresdb"
	"github.com/jrazmi/usergraph/infrastructure/web"
	"github.com/jrazmi/usergraph/sdk/environment"
	"github.com/jrazmi/usergraph/sdk/logger"
	"github.com/jrazmi/usergraph/sdk/telemetry"
)

var build = "develop"
var appName = "USERGRAPH"

func main() {
	godotenv.Load()
	ctx := context.Background()

	tel := telemetry.NewTelemetry()
	log, err := logger.NewFromEnv(appName,
		logger.WithService(appName),
		logger.WithTraceIDFn(tel.GetTraceID),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: SEED :*:
	users, err := loadSeed(ctx, log)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support", "users", len(users))
	store := usermemstore.NewStore(log, users)
	resolver := userresolver.New(log, userrepo.NewRepository(log, store))

	schema, err := graphqlbridge.NewSchema(graphqlbridge.UserOperations(resolver))
	if err != nil {
		return fmt.Errorf("graphql: %w", err)
	}

	var apiCfg config.API
	if err := environment.ParseEnvTags(appName, &apiCfg); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	siteCfg := config.Usergraph{
		Build:     build,
		Logger:    log,
		Telemetry: tel,
		API:       apiCfg,
		Executor:  graphqlbridge.NewExecutor(log, schema),
		UserCount: store.Len,
	}

	handler, err := webHandler(siteCfg)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "listening", "host", server.Addr, "graphql", siteCfg.API.GraphQLPath)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// loadSeed reads the startup snapshot. A postgres source is read once and the
// pool closed before serving.
func loadSeed(ctx context.Context, log *logger.Logger) ([]userrepo.User, error) {
	var cfg userseed.Config
	if err := environment.ParseEnvTags(appName, &cfg); err != nil {
		return nil, fmt.Errorf("seed config: %w", err)
	}
	log.InfoContext(ctx, "startup", "status", "loading seed", "source", cfg.Source)

	if cfg.Source != userseed.SourcePostgres {
		return userseed.Load(ctx, cfg, nil)
	}

	pool, err := postgresdb.NewFromEnv(ctx, appName, postgresdb.WithLogger(log.Logger))
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "startup", "status", "closing database connection")
		pool.Close()
	}()

	return userseed.Load(ctx, cfg, userpgxstore.NewStore(log, pool))
}

func webHandler(cfg config.Usergraph) (*web.WebHandler, error) {
	wh, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(cfg.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(),
			mid.Panics(),
		),
	)
	if err != nil {
		return nil, err
	}

	return api.AddHandlers(wh, cfg), nil
}
