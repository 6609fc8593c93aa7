package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd prints usage for all commands.
type HelpCmd struct{}

func (c *HelpCmd) Name() string                { return "help" }
func (c *HelpCmd) Aliases() []string           { return nil }
func (c *HelpCmd) Synopsis() string            { return "Show help" }
func (c *HelpCmd) Usage() string               { return "taskflow help" }
func (c *HelpCmd) RegisterFlags(*flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "usage: taskflow <command> [flags] [args]")
	fmt.Fprintln(out)
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-9s %s\n", cmd.Name(), cmd.Synopsis())
		fmt.Fprintf(out, "            %s\n", cmd.Usage())
	}
	return ExitOK
}
