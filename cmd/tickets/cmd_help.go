package main

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// HelpCmd creates the help command. commands is called at run time so the
// help command can list itself.
func HelpCmd(commands func() []*Command) *Command {
	flags := flag.NewFlagSet("help", flag.ContinueOnError)
	flags.BoolP("help", "h", false, "Show help")

	return &Command{
		Flags: flags,
		Usage: "help [command]",
		Short: "Show help for tickets or a command",
		Exec: func(_ context.Context, _ io.Reader, stdout, _ io.Writer, args []string) error {
			all := commands()

			if len(args) == 0 {
				printUsage(stdout, all)

				return nil
			}

			for _, cmd := range all {
				if cmd.Name() == args[0] {
					cmd.PrintHelp(stdout)

					return nil
				}

				for _, alias := range cmd.Aliases {
					if alias == args[0] {
						cmd.PrintHelp(stdout)

						return nil
					}
				}
			}

			return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
		},
	}
}
