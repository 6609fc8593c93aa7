package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd prints the task set, optionally filtered.
type ListCmd struct {
	search   string
	category string
	priority string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskflow list [--search <text>] [--category <name>] [--priority <high|medium|low>]"
}

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.category, "category", "all", "")
	fs.StringVar(&c.priority, "priority", "all", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if c.category == "" {
		c.category = "all"
	}
	if c.priority == "" {
		c.priority = "all"
	}

	env.Set.SetSearch(c.search)
	env.Set.SetCategory(c.category)
	env.Set.SetPriority(c.priority)

	tasks := env.Set.Filtered()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "no tasks")
		return ExitOK
	}

	for i, t := range tasks {
		formatTask(out, i+1, t)
	}

	s := env.Set.Stats()
	fmt.Fprintf(out, "\n%d total, %d completed, %d pending", s.Total, s.Completed, s.Pending)
	if s.Overdue > 0 {
		fmt.Fprintf(out, ", %d overdue", s.Overdue)
	}
	fmt.Fprintln(out)

	return ExitOK
}
