// Package main is the entry point for the taskflow CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jrazmi/taskflow/app/taskflow-cli/commands"
	"github.com/jrazmi/taskflow/client/snapshot"
	"github.com/jrazmi/taskflow/client/taskapi"
	"github.com/jrazmi/taskflow/client/workingset"
	"github.com/jrazmi/taskflow/core/summaries"
	"github.com/jrazmi/taskflow/infrastructure/gemini"
	"github.com/jrazmi/taskflow/sdk/environment"
	"github.com/jrazmi/taskflow/sdk/logger"
)

var appName = "TASKFLOW"

// Options is the CLI configuration.
type Options struct {
	APIURL      string `env:"API_URL" default:"http://localhost:8080"`
	APIToken    string `env:"API_TOKEN"`
	SnapshotDir string `env:"SNAPSHOT_DIR"`
}

func main() {
	environment.LoadEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	code, err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(commands.ExitBackendError)
	}
	os.Exit(code)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) (int, error) {
	var opts Options
	if err := environment.ParseEnvTags(appName, &opts); err != nil {
		return 0, fmt.Errorf("parsing cli config: %w", err)
	}

	log, err := logger.NewFromEnv(appName, logger.WithLevel("ERROR"), logger.WithOutput(errOut))
	if err != nil {
		return 0, fmt.Errorf("creating logger: %w", err)
	}

	snap, err := snapshot.NewStore(opts.SnapshotDir)
	if err != nil {
		return 0, fmt.Errorf("creating snapshot store: %w", err)
	}

	api := taskapi.NewClient(opts.APIURL, opts.APIToken)
	set := workingset.New(log, api, snap)
	if err := set.Load(ctx); err != nil {
		return 0, fmt.Errorf("loading tasks: %w", err)
	}

	env := &commands.Env{
		Log: log,
		Set: set,
	}

	gem, err := gemini.NewFromEnv("")
	if err != nil {
		return 0, fmt.Errorf("configuring gemini: %w", err)
	}
	if gem.Configured() {
		env.Summarizer = summaries.NewSummarizer(log, gem)
	}

	return dispatch(ctx, env, args, out, errOut), nil
}

func dispatch(ctx context.Context, env *commands.Env, args []string, out, errOut io.Writer) int {
	// No args runs the list command.
	cmdName := "list"
	if len(args) > 0 {
		cmdName = args[0]
		args = args[1:]
	}

	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return commands.ExitUserError
	}

	cmd, ok := commands.DefaultRegistry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return commands.ExitUserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	quiet := fs.Bool("q", false, "")
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\nusage: %s\n", err, cmd.Usage())
		return commands.ExitUserError
	}

	if *quiet {
		out = io.Discard
	}
	return cmd.Run(ctx, env, fs.Args(), out, errOut)
}
