package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jrazmi/taskflow/client/taskapi"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd creates a new task.
type AddCmd struct {
	description string
	priority    string
	category    string
	due         string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string {
	return "taskflow add [--desc <text>] [--priority <high|medium|low>] [--category <name>] [--due <YYYY-MM-DD>] <title>"
}

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title is required")
		return ExitUserError
	}

	input := taskapi.CreateTaskInput{
		Title:       title,
		Description: c.description,
		Priority:    c.priority,
		Category:    c.category,
	}

	if c.due != "" {
		due, err := time.ParseInLocation("2006-01-02", c.due, time.Local)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid due date %q, want YYYY-MM-DD\n", c.due)
			return ExitUserError
		}
		input.DueDate = &due
	}

	task := env.Set.Add(ctx, input)
	fmt.Fprintf(out, "added %s  %s\n", shortID(task.ID), task.Title)
	return ExitOK
}
