package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"
)

// ErrEditorFailed is returned when the editor exits with a non-zero status.
var ErrEditorFailed = errors.New("editor failed")

const defaultEditor = "vi"

// Editor opens a file for interactive editing.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// EditorCommand returns the editor command line: the "editor" user config
// value, then $VISUAL, then $EDITOR, then vi.
func EditorCommand(cfg *Config, env map[string]string) []string {
	for _, candidate := range []string{cfg.Editor, env["VISUAL"], env["EDITOR"]} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}

	return []string{defaultEditor}
}

// ExecEditor runs an external editor attached to the caller's terminal.
type ExecEditor struct {
	command []string
	env     map[string]string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewExecEditor creates an editor running command with path appended.
func NewExecEditor(command []string, env map[string]string, stdin io.Reader, stdout, stderr io.Writer) *ExecEditor {
	return &ExecEditor{command: command, env: env, stdin: stdin, stdout: stdout, stderr: stderr}
}

// Edit runs the editor and waits for it to exit.
//
// When the context is cancelled, SIGTERM is sent to the editor so it can
// save its state and exit.
func (e *ExecEditor) Edit(ctx context.Context, path string) error {
	if len(e.command) == 0 {
		return fmt.Errorf("%w: no editor configured", ErrEditorFailed)
	}

	args := make([]string, 0, len(e.command))
	args = append(args, e.command[1:]...)
	args = append(args, path)

	cmd := exec.Command(e.command[0], args...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	cmd.Env = make([]string, 0, len(e.env))
	for k, v := range e.env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	err := cmd.Start()
	if err != nil {
		return fmt.Errorf("starting editor %s: %w", e.command[0], err)
	}

	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			if cmd.Process != nil {
				_ = cmd.Process.Signal(syscall.SIGTERM)
			}
		case <-done:
		}
	}()

	err = cmd.Wait()

	close(done)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s exited with status %d", ErrEditorFailed, e.command[0], exitErr.ExitCode())
		}

		return fmt.Errorf("waiting for editor: %w", err)
	}

	return nil
}
