package main

import (
	"context"
	"errors"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// ErrNoTicketIDs is returned when a status command gets no ticket IDs.
var ErrNoTicketIDs = errors.New("no ticket IDs given")

// OpenCmd creates the open command.
func OpenCmd(ws *workspace) *Command {
	return statusCmd(ws, "open", ticket.StatusOpen, "Reopen tickets")
}

// CloseCmd creates the close command.
func CloseCmd(ws *workspace) *Command {
	return statusCmd(ws, "close", ticket.StatusClosed, "Close tickets")
}

// StartCmd creates the start command.
func StartCmd(ws *workspace) *Command {
	return statusCmd(ws, "start", ticket.StatusInProgress, "Mark tickets as in progress")
}

// CompleteCmd creates the complete command.
func CompleteCmd(ws *workspace) *Command {
	return statusCmd(ws, "complete", ticket.StatusComplete, "Mark tickets as complete", "done")
}

func statusCmd(ws *workspace, name string, status ticket.Status, short string, aliases ...string) *Command {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.BoolP("help", "h", false, "Show help")

	return &Command{
		Flags:   flags,
		Usage:   name + " <id>...",
		Short:   short,
		Long:    short + " by setting their status to " + status.String() + ".\nEach ID is handled on its own; IDs that fail are reported and the rest\nare still updated.",
		Aliases: aliases,
		Exec: func(_ context.Context, _ io.Reader, stdout, stderr io.Writer, args []string) error {
			if len(args) == 0 {
				return ErrNoTicketIDs
			}

			_, store, err := ws.Open()
			if err != nil {
				return err
			}

			updated, err := store.SetStatus(args, status)

			for _, id := range updated {
				fprintf(stdout, "%d %s\n", id, status)
			}

			if err == nil {
				return nil
			}

			if joined, ok := err.(interface{ Unwrap() []error }); ok {
				for _, e := range joined.Unwrap() {
					fprintError(stderr, e)
				}
			} else {
				fprintError(stderr, err)
			}

			if len(updated) > 0 {
				return nil
			}

			return ErrSilentExit
		},
	}
}
