package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd deletes a task.
type RmCmd struct{}

func (c *RmCmd) Name() string                { return "rm" }
func (c *RmCmd) Aliases() []string           { return []string{"delete"} }
func (c *RmCmd) Synopsis() string            { return "Delete a task" }
func (c *RmCmd) Usage() string               { return "taskflow rm <task-id-or-title>" }
func (c *RmCmd) RegisterFlags(*flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference is required")
		return ExitUserError
	}

	task, err := resolveTask(env.Set.All(), strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return ExitUserError
	}

	if !env.Set.Delete(ctx, task.ID) {
		fmt.Fprintf(errOut, "error: no task matches %q\n", task.ID)
		return ExitUserError
	}

	fmt.Fprintf(out, "deleted %s  %s\n", shortID(task.ID), task.Title)
	return ExitOK
}
