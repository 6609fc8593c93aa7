// Package commands provides the CLI command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/jrazmi/taskflow/client/workingset"
	"github.com/jrazmi/taskflow/core/summaries"
	"github.com/jrazmi/taskflow/sdk/logger"
)

// Exit codes.
const (
	ExitOK           = 0
	ExitUserError    = 1
	ExitBackendError = 2
)

// Env carries the shared dependencies a command runs against.
type Env struct {
	Log        *logger.Logger
	Set        *workingset.WorkingSet
	Summarizer *summaries.Summarizer
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns an exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
