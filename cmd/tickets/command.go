package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/project"
)

// ErrSilentExit makes a command exit with code 1 without printing anything
// further; the command has already reported the problem.
var ErrSilentExit = errors.New("silent exit")

// Command is a subcommand with its own flag set.
type Command struct {
	Flags   *flag.FlagSet
	Usage   string // first word is the command name
	Short   string // one line for the command list
	Long    string // shown by "<command> --help"
	Aliases []string
	Exec    func(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error
}

// Name returns the command name.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine returns the command's entry in the global help.
func (c *Command) HelpLine() string {
	line := fmt.Sprintf("  %-24s %s", c.Usage, c.Short)
	if len(c.Aliases) > 0 {
		line += " (alias: " + strings.Join(c.Aliases, ", ") + ")"
	}

	return line
}

// PrintHelp prints usage, description and flags of the command.
func (c *Command) PrintHelp(output io.Writer) {
	fprintln(output, "Usage: tickets", c.Usage)
	fprintln(output)

	if c.Long != "" {
		fprintln(output, c.Long)
	} else {
		fprintln(output, c.Short)
	}

	if len(c.Aliases) > 0 {
		fprintln(output)
		fprintln(output, "Aliases:", strings.Join(c.Aliases, ", "))
	}

	if c.Flags.HasAvailableFlags() {
		fprintln(output)
		fprintln(output, "Flags:")
		fprintf(output, "%s", c.Flags.FlagUsages())
	}
}

// Run parses the command's flags and executes it. Returns the exit code.
func (c *Command) Run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	c.Flags.Usage = func() {}
	c.Flags.SetOutput(&strings.Builder{})

	err := c.Flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		c.PrintHelp(stdout)

		return 0
	}

	if err != nil {
		fprintError(stderr, err)
		fprintln(stderr)
		c.PrintHelp(stderr)

		return 1
	}

	if help, _ := c.Flags.GetBool("help"); help {
		c.PrintHelp(stdout)

		return 0
	}

	err = c.Exec(ctx, stdin, stdout, stderr, c.Flags.Args())

	switch {
	case err == nil:
		return 0
	case errors.Is(err, project.ErrConfigDeclined):
		return 0
	case errors.Is(err, ErrSilentExit):
		return 1
	}

	fprintError(stderr, err)

	return 1
}
