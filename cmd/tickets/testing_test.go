package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// CLI runs tickets in-process against a temp HOME and a temp project
// directory.
type CLI struct {
	t    *testing.T
	Dir  string // working directory passed as --cwd
	Home string
	Env  map[string]string
}

// NewCLITester creates a CLI whose working directory already has a
// .tickets_config naming the project "demo".
func NewCLITester(t *testing.T) *CLI {
	t.Helper()

	c := NewBareCLITester(t)
	c.WriteFile(".tickets_config", "project_name:demo\n")

	return c
}

// NewBareCLITester creates a CLI whose working directory has no project config.
func NewBareCLITester(t *testing.T) *CLI {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	dir := filepath.Join(base, "work", "repo")

	for _, d := range []string{home, dir} {
		err := os.MkdirAll(d, 0o750)
		if err != nil {
			t.Fatalf("failed to create dir %s: %v", d, err)
		}
	}

	return &CLI{
		t:    t,
		Dir:  dir,
		Home: home,
		Env: map[string]string{
			"HOME": home,
			"PATH": os.Getenv("PATH"),
		},
	}
}

// TicketsDir returns the ticket directory of project name.
func (c *CLI) TicketsDir(name string) string {
	return filepath.Join(c.Home, ".tickets", name)
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "tickets" or "--cwd" - those are added automatically.
func (c *CLI) Run(args ...string) (string, string, int) {
	return c.RunWithInput(nil, args...)
}

// RunWithInput executes the CLI with stdin and args.
// stdin can be nil, an io.Reader, or a []string (joined with newlines).
func (c *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader

	switch v := stdin.(type) {
	case nil:
		inReader = nil
	case io.Reader:
		inReader = v
	case []string:
		inReader = strings.NewReader(strings.Join(v, "\n") + "\n")
	default:
		panic(fmt.Sprintf("RunWithInput: stdin must be nil, io.Reader, or []string, got %T", stdin))
	}

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"tickets", "--cwd", c.Dir}, args...)
	code := Run(inReader, &outBuf, &errBuf, fullArgs, c.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (c *CLI) MustRun(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code != 0 {
		c.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Returns trimmed stderr.
func (c *CLI) MustFail(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code == 0 {
		c.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// WriteFile writes content to a file in the working directory.
func (c *CLI) WriteFile(relPath, content string) {
	c.t.Helper()

	writeTestFile(c.t, filepath.Join(c.Dir, relPath), content)
}

// WriteTicketFile writes a raw file into a project's ticket directory.
func (c *CLI) WriteTicketFile(projectName, name, content string) {
	c.t.Helper()

	writeTestFile(c.t, filepath.Join(c.TicketsDir(projectName), name), content)
}

// ReadTicketFile reads a raw file from a project's ticket directory.
func (c *CLI) ReadTicketFile(projectName, name string) string {
	c.t.Helper()

	content, err := os.ReadFile(filepath.Join(c.TicketsDir(projectName), name))
	if err != nil {
		c.t.Fatalf("failed to read ticket %s: %v", name, err)
	}

	return string(content)
}

// WriteExecutable writes an executable script in the working directory and
// returns its path. Skips the test where shell scripts cannot run.
func (c *CLI) WriteExecutable(relPath, content string) string {
	c.t.Helper()

	if runtime.GOOS == "windows" {
		c.t.Skip("shell scripts are not supported on windows")
	}

	path := filepath.Join(c.Dir, relPath)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		c.t.Fatalf("failed to create executable %s: %v", relPath, err)
	}

	_, err = f.WriteString(content)
	if err != nil {
		_ = f.Close()

		c.t.Fatalf("failed to write executable %s: %v", relPath, err)
	}

	err = f.Close()
	if err != nil {
		c.t.Fatalf("failed to close executable %s: %v", relPath, err)
	}

	// Works around "text file busy" on some filesystems.
	time.Sleep(10 * time.Millisecond)

	return path
}

// ReadFile reads a file from the working directory.
func (c *CLI) ReadFile(relPath string) string {
	c.t.Helper()

	content, err := os.ReadFile(filepath.Join(c.Dir, relPath))
	if err != nil {
		c.t.Fatalf("failed to read file %s: %v", relPath, err)
	}

	return string(content)
}

// FileExists returns true if the file exists in the working directory.
func (c *CLI) FileExists(relPath string) bool {
	_, err := os.Stat(filepath.Join(c.Dir, relPath))

	return err == nil
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// stripANSI removes ANSI escape codes from a string.
func stripANSI(s string) string {
	result := s
	for {
		start := strings.Index(result, "\033[")
		if start == -1 {
			break
		}

		end := strings.Index(result[start:], "m")
		if end == -1 {
			break
		}

		result = result[:start] + result[start+end+1:]
	}

	return result
}

// AssertContains fails the test if content doesn't contain substr.
// ANSI codes are stripped before comparison.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(stripANSI(content), substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
// ANSI codes are stripped before comparison.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(stripANSI(content), substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}

// listedIDs returns the ID column of list output.
func listedIDs(stdout string) []string {
	var ids []string

	for line := range strings.Lines(stripANSI(stdout)) {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			ids = append(ids, fields[0])
		}
	}

	return ids
}
