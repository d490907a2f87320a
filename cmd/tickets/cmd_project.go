package main

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/project"
)

// ProjectCmd creates the project command.
func ProjectCmd(ws *workspace) *Command {
	flags := flag.NewFlagSet("project", flag.ContinueOnError)
	flags.BoolP("help", "h", false, "Show help")

	return &Command{
		Flags: flags,
		Usage: "project [name]",
		Short: "Show or rename the current project",
		Long: `Without arguments, print the project name and its ticket directory.
With a name, write it as project_name to .tickets_config. Existing tickets
stay in the old directory.`,
		Exec: func(_ context.Context, _ io.Reader, stdout, _ io.Writer, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("project takes at most one name, got %d", len(args))
			}

			pctx, err := ws.Project()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				err = project.SetName(pctx, args[0])
				if err != nil {
					return err
				}
			}

			fprintf(stdout, "%s\t%s\n", pctx.Name, pctx.Dir())

			return nil
		},
	}
}
