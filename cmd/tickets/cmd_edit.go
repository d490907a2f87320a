package main

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// EditCmd creates the edit command.
func EditCmd(ws *workspace, editor Editor) *Command {
	flags := flag.NewFlagSet("edit", flag.ContinueOnError)
	flags.BoolP("help", "h", false, "Show help")

	return &Command{
		Flags: flags,
		Usage: "edit <id>",
		Short: "Open a ticket in your editor",
		Long:  "Open a ticket file in the editor from the \"editor\" config key,\n$VISUAL, $EDITOR or vi, in that order.",
		Exec: func(ctx context.Context, _ io.Reader, _, _ io.Writer, args []string) error {
			if len(args) == 0 {
				return ErrNoTicketIDs
			}

			if len(args) > 1 {
				return fmt.Errorf("edit takes one ticket ID, got %d", len(args))
			}

			_, store, err := ws.Open()
			if err != nil {
				return err
			}

			path, err := store.EditPath(args[0])
			if err != nil {
				return err
			}

			ws.debug.Logf("editing %s", path)

			return editor.Edit(ctx, path)
		},
	}
}
