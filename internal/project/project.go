// Package project resolves which project a tickets invocation works on and
// where its ticket files live.
//
// The project name comes from the project_name key of a ".tickets_config" file
// in the working directory, or from the working directory's base name. Ticket
// files live in <tickets root>/<project name>, the tickets root defaulting to
// ~/.tickets.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultTicketsDir is the tickets root relative to the home directory.
const DefaultTicketsDir = ".tickets"

// Context is the resolved project for one invocation.
type Context struct {
	// TicketsRoot holds one directory per project.
	TicketsRoot string
	// Name is the project name and the name of its ticket directory.
	Name string
	// WorkDir is the directory the project config is looked up in.
	WorkDir string
	// ConfigPath is the project config location, whether or not it exists.
	ConfigPath string
	// Config is the parsed project config, nil when there is none.
	Config *Config
}

// Dir returns the project's ticket directory.
func (c *Context) Dir() string {
	return filepath.Join(c.TicketsRoot, c.Name)
}

// ResolveInput holds the inputs for Resolve.
type ResolveInput struct {
	WorkDir     string            // -C/--cwd value; if empty, os.Getwd() is used
	TicketsRoot string            // user config override; "~/" is expanded, relative paths are under home
	Project     string            // --project value; skips the project config entirely
	Env         map[string]string // for HOME
	Prompter    Prompter          // asks before creating a project config; nil declines
	Debugf      func(format string, args ...any)
}

// Resolve determines the tickets root and the project name. When the working
// directory has no project config, the user is asked to create one; declining
// returns [ErrConfigDeclined].
func Resolve(input ResolveInput) (Context, error) {
	debugf := input.Debugf
	if debugf == nil {
		debugf = func(string, ...any) {}
	}

	workDir, err := resolveWorkDir(input.WorkDir)
	if err != nil {
		return Context{}, err
	}

	root, err := resolveTicketsRoot(input.TicketsRoot, input.Env)
	if err != nil {
		return Context{}, err
	}

	ctx := Context{
		TicketsRoot: root,
		WorkDir:     workDir,
		ConfigPath:  filepath.Join(workDir, ConfigFileName),
	}

	debugf("tickets root: %s", root)

	cfg, err := ReadConfigFile(ctx.ConfigPath)

	switch {
	case err == nil:
		ctx.Config = cfg
		debugf("project config: %s", ctx.ConfigPath)
	case errors.Is(err, fs.ErrNotExist):
		debugf("project config: %s (not found)", ctx.ConfigPath)
	default:
		return Context{}, err
	}

	defaultName := filepath.Base(workDir)

	switch {
	case input.Project != "":
		ctx.Name = input.Project
		debugf("project name: %s (from --project)", ctx.Name)
	case ctx.Config != nil:
		ctx.Name = defaultName
		if name, ok := ctx.Config.Get(KeyProjectName); ok && name != "" {
			ctx.Name = name
		}

		debugf("project name: %s", ctx.Name)
	default:
		ctx.Config, err = createConfig(ctx.ConfigPath, defaultName, input.Prompter)
		if err != nil {
			return Context{}, err
		}

		ctx.Name, _ = ctx.Config.Get(KeyProjectName)
		debugf("project name: %s (config created)", ctx.Name)
	}

	err = ValidateName(ctx.Name)
	if err != nil {
		return Context{}, err
	}

	return ctx, nil
}

func resolveWorkDir(override string) (string, error) {
	workDir := override
	if workDir == "" || !filepath.IsAbs(workDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrCurrentDirectoryUnavailable, err)
		}

		workDir = filepath.Join(cwd, workDir)
	}

	info, err := os.Stat(workDir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCurrentDirectoryUnavailable, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrCurrentDirectoryUnavailable, workDir)
	}

	return filepath.Clean(workDir), nil
}

func resolveTicketsRoot(override string, env map[string]string) (string, error) {
	if filepath.IsAbs(override) {
		return filepath.Clean(override), nil
	}

	home, err := HomeDir(env)
	if err != nil {
		return "", err
	}

	switch {
	case override == "":
		return filepath.Join(home, DefaultTicketsDir), nil
	case override == "~":
		return home, nil
	case strings.HasPrefix(override, "~/"):
		return filepath.Join(home, override[2:]), nil
	}

	return filepath.Join(home, override), nil
}

// HomeDir returns the home directory, validating that it exists and is a
// directory. $HOME from env wins over the OS lookup.
func HomeDir(env map[string]string) (string, error) {
	home := env["HOME"]
	source := " (from $HOME)"

	if home == "" {
		var err error

		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %w (set $HOME environment variable)", ErrHomeDirectoryUnavailable, err)
		}

		source = ""
	}

	info, err := os.Stat(home)
	if err != nil {
		return "", fmt.Errorf("%w: %s%s does not exist: %w", ErrHomeDirectoryUnavailable, home, source, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s%s is not a directory", ErrHomeDirectoryUnavailable, home, source)
	}

	return home, nil
}

// createConfig asks the user whether to create a project config and for the
// project name, then writes it.
func createConfig(path, defaultName string, prompter Prompter) (*Config, error) {
	if prompter == nil {
		return nil, ErrConfigDeclined
	}

	ok, err := prompter.Confirm(fmt.Sprintf("No %s found in %s. Create one?", ConfigFileName, filepath.Dir(path)), true)
	if err != nil || !ok {
		return nil, ErrConfigDeclined
	}

	var name string

	for name == "" {
		name, err = prompter.Ask("Enter a name for the project", defaultName)
		if err != nil {
			return nil, ErrConfigDeclined
		}

		if ValidateName(name) != nil {
			name = ""
		}
	}

	cfg := NewConfig()
	cfg.Set(KeyProjectName, name)

	err = WriteConfigFile(path, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetName writes name as project_name to the project config in ctx, keeping
// every other key. The config is created when missing.
func SetName(ctx *Context, name string) error {
	err := ValidateName(name)
	if err != nil {
		return err
	}

	cfg := ctx.Config
	if cfg == nil {
		cfg = NewConfig()
	}

	cfg.Set(KeyProjectName, name)

	err = WriteConfigFile(ctx.ConfigPath, cfg)
	if err != nil {
		return err
	}

	ctx.Config = cfg
	ctx.Name = name

	return nil
}

// ValidateName rejects names that would not map to a single directory below
// the tickets root.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	case strings.ContainsAny(name, "/\n") || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidProjectName, name)
	}

	return nil
}
