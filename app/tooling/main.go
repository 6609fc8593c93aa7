package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/taskflow/infrastructure/postgresdb"
	"github.com/jrazmi/taskflow/sdk/environment"
	"github.com/jrazmi/taskflow/sdk/identity"
	"github.com/jrazmi/taskflow/sdk/logger"
)

var appName = "TASKFLOW"

func processCommands(ctx context.Context, log *logger.Logger, command string, args []string, pg *pgxpool.Pool) error {
	switch command {
	case "migrate":
		log.InfoContext(ctx, "running migration")
		if err := postgresdb.Migrate(ctx, pg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.InfoContext(ctx, "migration completed successfully")
		return nil

	case "mint-token":
		return mintToken(args)

	default:
		printHelp()
		return nil
	}
}

func mintToken(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: mint-token <user_id> [email] [name]")
	}

	ident := identity.Identity{ID: args[0]}
	if len(args) > 1 {
		ident.Email = args[1]
	}
	if len(args) > 2 {
		ident.Name = args[2]
	}

	opts, err := identity.LoadOptions(appName)
	if err != nil {
		return fmt.Errorf("loading identity config: %w", err)
	}

	token, err := identity.Sign(ident, opts.Secret, 24*time.Hour)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}

	fmt.Println(token)
	return nil
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate                            - create the schema in the database")
	fmt.Println("  mint-token <user_id> [email] [name] - sign a bearer token for local testing")
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}

	args := []string{}
	if len(os.Args) > 2 {
		args = os.Args[2:]
	}

	// mint-token does not need a database.
	if command == "mint-token" {
		return processCommands(ctx, log, command, args, nil)
	}

	pg, err := postgresdb.NewFromEnv(appName)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()
	log.InfoContext(ctx, "init", "service", "postgres")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- processCommands(ctx, log, command, args, pg)
	}()

	select {
	case err := <-done:
		return err

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

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
