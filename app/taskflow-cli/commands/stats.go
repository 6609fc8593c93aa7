package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd prints task counts and the category breakdown.
type StatsCmd struct{}

func (c *StatsCmd) Name() string                { return "stats" }
func (c *StatsCmd) Aliases() []string           { return nil }
func (c *StatsCmd) Synopsis() string            { return "Show task and category statistics" }
func (c *StatsCmd) Usage() string               { return "taskflow stats" }
func (c *StatsCmd) RegisterFlags(*flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	s := env.Set.Stats()
	fmt.Fprintf(out, "total:     %d\n", s.Total)
	fmt.Fprintf(out, "completed: %d\n", s.Completed)
	fmt.Fprintf(out, "pending:   %d\n", s.Pending)
	fmt.Fprintf(out, "overdue:   %d\n", s.Overdue)

	categories := env.Set.Categories()
	if len(categories) == 0 {
		return ExitOK
	}

	fmt.Fprintln(out, "\ncategories:")
	for _, cat := range categories {
		fmt.Fprintf(out, "  %s  %s (%d)\n", cat.Color, cat.Name, cat.Count)
	}
	return ExitOK
}
