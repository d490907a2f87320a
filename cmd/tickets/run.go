package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

// ErrUnknownCommand is returned for a command name no command answers to.
var ErrUnknownCommand = errors.New("unknown command")

// Run is the main entry point. Returns exit code.
// sigCh can be nil if signal handling is not needed (e.g., in tests).
func Run(stdin io.Reader, stdout, stderr io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("tickets", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.Usage = func() {}
	globalFlags.SetOutput(&strings.Builder{})

	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagVersion := globalFlags.BoolP("version", "v", false, "Show version and exit")
	flagCwd := globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	flagConfig := globalFlags.String("config", "", "Use specified config `file`")
	flagProject := globalFlags.StringP("project", "p", "", "Use project `name` instead of .tickets_config")
	flagDebug := globalFlags.Bool("debug", false, "Print debug information to stderr")

	err := globalFlags.Parse(args[1:])
	if err != nil {
		fprintError(stderr, err)
		fprintln(stderr)
		printGlobalOptions(stderr)

		return 1
	}

	if *flagVersion {
		if commit == "none" && date == "unknown" {
			fprintf(stdout, "tickets %s (built from source)\n", version)
		} else {
			fprintf(stdout, "tickets %s (%s, %s)\n", version, commit, date)
		}

		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var debug *DebugLogger
	if *flagDebug {
		debug = NewDebugLogger(stderr)
	}

	cfg, err := LoadConfig(LoadConfigInput{
		WorkDirOverride: *flagCwd,
		ConfigPath:      *flagConfig,
		Env:             env,
	})
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	debugConfigLoading(debug, &cfg)

	ws := newWorkspace(&cfg, *flagProject, env, stdin, stderr, debug)
	editor := NewExecEditor(EditorCommand(&cfg, env), env, stdin, stdout, stderr)

	var commands []*Command

	commands = append(commands,
		NewCmd(ws),
		ListCmd(ws),
		CurrentCmd(ws),
		OpenCmd(ws),
		CloseCmd(ws),
		StartCmd(ws),
		CompleteCmd(ws),
		EditCmd(ws, editor),
		ProjectCmd(ws),
		HelpCmd(func() []*Command { return commands }),
	)

	commandMap := make(map[string]*Command, len(commands)*2)
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
		for _, alias := range cmd.Aliases {
			commandMap[alias] = cmd
		}
	}

	commandAndArgs := globalFlags.Args()

	// Show help: explicit --help or bare `tickets` with no args
	if *flagHelp || len(commandAndArgs) == 0 {
		printUsage(stdout, commands)

		return 0
	}

	cmdName := commandAndArgs[0]

	cmd, ok := commandMap[cmdName]
	if !ok {
		fprintError(stderr, fmt.Errorf("%w: %s", ErrUnknownCommand, cmdName))
		fprintln(stderr)
		fprintln(stderr, "Run 'tickets --help' for a list of commands.")

		return 1
	}

	commandAndArgs = commandAndArgs[1:]

	// Run command in goroutine so we can handle signals
	done := make(chan int, 1)

	go func() {
		done <- cmd.Run(ctx, stdin, stdout, stderr, commandAndArgs)
	}()

	if sigCh == nil {
		return <-done
	}

	select {
	case exitCode := <-done:
		return exitCode
	case <-sigCh:
		fprintln(stderr, "Interrupted, waiting up to 10s for cleanup... (Ctrl+C again to force exit)")
		cancel()
	}

	select {
	case <-done:
		fprintln(stderr, "Cleanup complete.")

		return 130
	case <-time.After(10 * time.Second):
		fprintln(stderr, "Cleanup timed out, forced exit.")

		return 130
	case <-sigCh:
		fprintln(stderr, "Forced exit.")

		return 130
	}
}

func fprintln(output io.Writer, a ...any) {
	_, _ = fmt.Fprintln(output, a...)
}

func fprintf(output io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(output, format, a...)
}

func fprintWarning(output io.Writer, err error) {
	fprintln(output, "warning:", err)
}

// ANSI color codes for terminal output.
const (
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// fprintError prints an error message, red when output is a terminal.
func fprintError(output io.Writer, err error) {
	if isTerminal(output) {
		fprintln(output, colorRed+"error:"+colorReset, err)
	} else {
		fprintln(output, "error:", err)
	}
}

const globalOptionsHelp = `  -h, --help             Show help
  -v, --version          Show version and exit
  -C, --cwd <dir>        Run as if started in <dir>
      --config <file>    Use specified config file
  -p, --project <name>   Use project <name> instead of .tickets_config
      --debug            Print debug information to stderr`

func printGlobalOptions(output io.Writer) {
	fprintln(output, "Usage: tickets [flags] <command> [args]")
	fprintln(output)
	fprintln(output, "Global flags:")
	fprintln(output, globalOptionsHelp)
	fprintln(output)
	fprintln(output, "Run 'tickets --help' for a list of commands.")
}

func printUsage(output io.Writer, commands []*Command) {
	fprintln(output, "tickets - personal ticket tracker")
	fprintln(output)
	fprintln(output, "Usage: tickets [flags] <command> [args]")
	fprintln(output)
	fprintln(output, "Flags:")
	fprintln(output, globalOptionsHelp)
	fprintln(output)
	fprintln(output, "Commands:")

	for _, cmd := range commands {
		fprintln(output, cmd.HelpLine())
	}

	fprintln(output)
	fprintln(output, "Run 'tickets <command> --help' for more information on a command.")
}

// isTerminal reports whether w is a terminal.
// It can be overridden in tests to control TTY behavior.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
