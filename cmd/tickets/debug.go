package main

import (
	"fmt"
	"io"

	"github.com/calvinalkan/tickets/internal/project"
)

// DebugLogger writes --debug diagnostics to stderr.
// It is disabled when output is nil; every method is then a no-op.
type DebugLogger struct {
	output io.Writer
}

// NewDebugLogger creates a new debug logger.
// If output is nil, the logger is disabled.
func NewDebugLogger(output io.Writer) *DebugLogger {
	return &DebugLogger{output: output}
}

// Enabled returns true if debug logging is enabled.
func (d *DebugLogger) Enabled() bool {
	return d != nil && d.output != nil
}

// Section outputs a section header.
func (d *DebugLogger) Section(name string) {
	if !d.Enabled() {
		return
	}

	_, _ = fmt.Fprintf(d.output, "\n=== %s ===\n", name)
}

// Logf outputs a formatted debug message.
func (d *DebugLogger) Logf(format string, args ...any) {
	if !d.Enabled() {
		return
	}

	_, _ = fmt.Fprintf(d.output, format+"\n", args...)
}

// Bulletf outputs an indented bullet point item.
func (d *DebugLogger) Bulletf(format string, args ...any) {
	if !d.Enabled() {
		return
	}

	_, _ = fmt.Fprintf(d.output, "  • "+format+"\n", args...)
}

// ConfigFile outputs information about a config file.
func (d *DebugLogger) ConfigFile(label, path string, loaded bool) {
	if !d.Enabled() {
		return
	}

	if loaded {
		_, _ = fmt.Fprintf(d.output, "  %s: %s\n", label, path)
	} else {
		_, _ = fmt.Fprintf(d.output, "  %s: (not found)\n", label)
	}
}

func debugConfigLoading(debug *DebugLogger, cfg *Config) {
	if !debug.Enabled() {
		return
	}

	debug.Section("Config Loading")
	debug.ConfigFile("User config", cfg.LoadedFrom, cfg.LoadedFrom != "")
	debug.Logf("  working directory: %s", cfg.EffectiveCwd)

	if cfg.TicketsRoot != "" {
		debug.Logf("  tickets_root: %s", cfg.TicketsRoot)
	}

	if cfg.Editor != "" {
		debug.Logf("  editor: %s", cfg.Editor)
	}
}

func debugProject(debug *DebugLogger, pctx *project.Context) {
	if !debug.Enabled() {
		return
	}

	debug.Section("Project")
	debug.Bulletf("name: %s", pctx.Name)
	debug.Bulletf("tickets directory: %s", pctx.Dir())
}
