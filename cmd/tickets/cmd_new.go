package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// ErrEmptyBody is returned when a new ticket has no description.
var ErrEmptyBody = errors.New("ticket description is empty")

// NewCmd creates the new command.
func NewCmd(ws *workspace) *Command {
	flags := flag.NewFlagSet("new", flag.ContinueOnError)
	flags.BoolP("help", "h", false, "Show help")
	flags.StringP("owner", "o", "", "Set the ticket `owner`")
	flags.StringArrayP("field", "f", nil, "Add a header field as `key=value` (repeatable)")

	return &Command{
		Flags: flags,
		Usage: "new [flags] <description...>",
		Short: "Create a new open ticket",
		Long: `Create a new ticket with status open. The description words are joined
with spaces; the first line becomes the ticket title. Without a description
you are asked for one.

Examples:
  tickets new fix the login redirect
  tickets new -o alice -f priority=high "flaky CI on main"`,
		Exec: func(_ context.Context, _ io.Reader, stdout, _ io.Writer, args []string) error {
			owner, _ := flags.GetString("owner")
			rawFields, _ := flags.GetStringArray("field")

			fields, err := parseFieldFlags(rawFields)
			if err != nil {
				return err
			}

			pctx, store, err := ws.Open()
			if err != nil {
				return err
			}

			body := strings.TrimSpace(strings.Join(args, " "))
			if body == "" {
				body, err = ws.prompter.Line("Ticket description")
				if err != nil || body == "" {
					return ErrEmptyBody
				}
			}

			rec, err := store.Create(ticket.CreateInput{
				Body:   body,
				Owner:  owner,
				Fields: fields,
			})
			if err != nil {
				return err
			}

			ws.debug.Logf("wrote %s", store.Path(rec.ID))
			fprintf(stdout, "Created ticket %d in %s\n", rec.ID, pctx.Name)

			return nil
		},
	}
}

func parseFieldFlags(raw []string) ([]ticket.Field, error) {
	fields := make([]ticket.Field, 0, len(raw))

	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q must be key=value", ticket.ErrInvalidField, kv)
		}

		fields = append(fields, ticket.Field{Key: strings.TrimSpace(key), Value: value})
	}

	return fields, nil
}
