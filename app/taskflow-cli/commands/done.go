package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles a task's completed state.
type DoneCmd struct{}

func (c *DoneCmd) Name() string                { return "done" }
func (c *DoneCmd) Aliases() []string           { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string            { return "Toggle a task complete or pending" }
func (c *DoneCmd) Usage() string               { return "taskflow done <task-id-or-title>" }
func (c *DoneCmd) RegisterFlags(*flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference is required")
		return ExitUserError
	}

	task, err := resolveTask(env.Set.All(), strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return ExitUserError
	}

	if !env.Set.Toggle(ctx, task.ID) {
		fmt.Fprintf(errOut, "error: no task matches %q\n", task.ID)
		return ExitUserError
	}

	state := "pending"
	if !task.Completed {
		state = "done"
	}
	fmt.Fprintf(out, "%s  %s is now %s\n", shortID(task.ID), task.Title, state)
	return ExitOK
}
