package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// ListCmd creates the list command.
func ListCmd(ws *workspace) *Command {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	flags.BoolP("help", "h", false, "Show help")
	flags.Bool("open", false, "Show open tickets")
	flags.Bool("in_progress", false, "Show tickets in progress")
	flags.Bool("current", false, "Same as --in_progress")
	flags.Bool("closed", false, "Show closed tickets")
	flags.Bool("complete", false, "Show complete tickets")

	// "--in-progress" and "--in_progress" are the same flag; anything else
	// that looks like a flag is ignored.
	flags.SetNormalizeFunc(func(_ *flag.FlagSet, name string) flag.NormalizedName {
		return flag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
	})
	flags.ParseErrorsAllowlist.UnknownFlags = true

	return &Command{
		Flags:   flags,
		Usage:   "list [flags]",
		Short:   "List tickets, optionally by status",
		Long:    "List the project's tickets in ID order. Status flags combine: a ticket\nis shown when its status matches any of them. Without flags every ticket\nis shown.",
		Aliases: []string{"ls"},
		Exec: func(_ context.Context, _ io.Reader, stdout, stderr io.Writer, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}

			var statuses []ticket.Status

			selectors := []struct {
				flag   string
				status ticket.Status
			}{
				{"open", ticket.StatusOpen},
				{"in_progress", ticket.StatusInProgress},
				{"current", ticket.StatusInProgress},
				{"closed", ticket.StatusClosed},
				{"complete", ticket.StatusComplete},
			}

			for _, sel := range selectors {
				if set, _ := flags.GetBool(sel.flag); set {
					statuses = append(statuses, sel.status)
				}
			}

			return listTickets(ws, stdout, stderr, ticket.NewFilter(statuses...))
		},
	}
}

// CurrentCmd creates the current command.
func CurrentCmd(ws *workspace) *Command {
	flags := flag.NewFlagSet("current", flag.ContinueOnError)
	flags.BoolP("help", "h", false, "Show help")

	return &Command{
		Flags: flags,
		Usage: "current",
		Short: "List tickets in progress",
		Exec: func(_ context.Context, _ io.Reader, stdout, stderr io.Writer, _ []string) error {
			return listTickets(ws, stdout, stderr, ticket.NewFilter(ticket.StatusInProgress))
		},
	}
}

func listTickets(ws *workspace, stdout, stderr io.Writer, filter ticket.Filter) error {
	_, store, err := ws.Open()
	if err != nil {
		return err
	}

	records, err := store.List(stderr)
	if err != nil {
		return err
	}

	ws.debug.Logf("%d tickets read from %s", len(records), store.Dir())

	printRecords(stdout, filter.Apply(records))

	return nil
}

const statusColumnWidth = len("in_progress")

var statusColors = map[ticket.Status]lipgloss.Color{
	ticket.StatusOpen:       lipgloss.Color("4"),
	ticket.StatusInProgress: lipgloss.Color("3"),
	ticket.StatusClosed:     lipgloss.Color("8"),
	ticket.StatusComplete:   lipgloss.Color("2"),
}

// printRecords writes one line per ticket: ID, status and title, followed by
// the owner when set. Colors are only used when stdout is a terminal.
func printRecords(stdout io.Writer, records []ticket.Record) {
	renderer := lipgloss.NewRenderer(stdout)
	ownerStyle := renderer.NewStyle().Faint(true)

	for i := range records {
		rec := &records[i]

		status := rec.Status.String()
		statusStyle := renderer.NewStyle()

		if color, ok := statusColors[rec.Status]; ok {
			statusStyle = statusStyle.Foreground(color)
		}

		padding := ""
		if len(status) < statusColumnWidth {
			padding = strings.Repeat(" ", statusColumnWidth-len(status))
		}

		title := rec.Title()
		if title == "" {
			title = "(no description)"
		}

		line := fmt.Sprintf("%4d  %s%s  %s", rec.ID, statusStyle.Render(status), padding, title)

		if rec.Owner != "" {
			line += "  " + ownerStyle.Render("@"+rec.Owner)
		}

		fprintln(stdout, line)
	}
}
