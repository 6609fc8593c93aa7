package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jrazmi/taskflow/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/taskflow/bridge/scaffolding/mid"
	"github.com/jrazmi/taskflow/core/repositories/tasksrepo"
	"github.com/jrazmi/taskflow/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/taskflow/infrastructure/postgresdb"
	"github.com/jrazmi/taskflow/infrastructure/web"
	"github.com/jrazmi/taskflow/sdk/environment"
	"github.com/jrazmi/taskflow/sdk/identity"
	"github.com/jrazmi/taskflow/sdk/logger"
	"github.com/jrazmi/taskflow/sdk/telemetry"
)

var build = "develop"
var appName = "TASKFLOW"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATABASES :*:
	pool, err := postgresdb.NewFromEnv(appName)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pool.Close()
	}()

	var startup struct {
		MigrateOnStart bool `env:"MIGRATE_ON_START" default:"false"`
	}
	if err := environment.ParseEnvTags(appName, &startup); err != nil {
		return fmt.Errorf("parsing startup config: %w", err)
	}
	if startup.MigrateOnStart {
		log.InfoContext(ctx, "startup", "status", "running migrations")
		if err := postgresdb.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	tasksRepository := tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pool))

	// AUTH //
	identityOpts, err := identity.LoadOptions(appName)
	if err != nil {
		return fmt.Errorf("loading identity config: %w", err)
	}

	handler := webHandler(log, identityOpts, tasksRepository, pool)

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
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

func webHandler(log *logger.Logger, identityOpts identity.Options, tasksRepository *tasksrepo.Repository, pool *postgresdb.Pool) http.Handler {
	handler := web.NewWebHandlerDefault(
		web.WithLogging(log.Logger),
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log),
			mid.Metrics(),
			mid.Panics(),
		),
	)

	handler.GET("/liveness", liveness())
	handler.GET("/readiness", readiness(pool))

	api := handler.Group("/api", mid.Bearer(log, identityOpts.Secret))
	tasksrepobridge.AddHttpRoutes(api, tasksrepobridge.Config{
		Log:        log,
		Repository: tasksRepository,
	})

	return handler
}

func liveness() web.HandlerFunc {
	host, _ := os.Hostname()

	return func(ctx context.Context, r *http.Request) web.Encoder {
		info := struct {
			Status string `json:"status"`
			Build  string `json:"build"`
			Host   string `json:"host"`
		}{
			Status: "up",
			Build:  build,
			Host:   host,
		}
		return web.NewJSONResponse(info)
	}
}

func readiness(pool *postgresdb.Pool) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		if err := postgresdb.StatusCheck(ctx, pool); err != nil {
			return web.NewJSONResponseWithStatus(struct {
				Status string `json:"status"`
			}{Status: "db not ready"}, http.StatusInternalServerError)
		}
		return web.NewJSONResponse(struct {
			Status string `json:"status"`
		}{Status: "ok"})
	}
}
