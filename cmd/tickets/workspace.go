package main

import (
	"io"

	"github.com/calvinalkan/tickets/internal/project"
	"github.com/calvinalkan/tickets/internal/ticket"
)

// workspace resolves the project and opens its ticket store on first use.
// Commands that never touch tickets (help) never prompt for a project config.
type workspace struct {
	cfg      *Config
	project  string
	env      map[string]string
	prompter *project.LinePrompter
	debug    *DebugLogger

	opened bool
	pctx   project.Context
	store  *ticket.Store
	err    error
}

func newWorkspace(cfg *Config, projectOverride string, env map[string]string, stdin io.Reader, stderr io.Writer, debug *DebugLogger) *workspace {
	return &workspace{
		cfg:      cfg,
		project:  projectOverride,
		env:      env,
		prompter: project.NewLinePrompter(stdin, stderr),
		debug:    debug,
	}
}

// Project resolves the project without opening the store.
func (w *workspace) Project() (*project.Context, error) {
	if w.pctx.Name != "" {
		return &w.pctx, nil
	}

	w.debug.Section("Project Resolution")

	pctx, err := project.Resolve(project.ResolveInput{
		WorkDir:     w.cfg.EffectiveCwd,
		TicketsRoot: w.cfg.TicketsRoot,
		Project:     w.project,
		Env:         w.env,
		Prompter:    w.prompter,
		Debugf:      w.debug.Bulletf,
	})
	if err != nil {
		return nil, err
	}

	w.pctx = pctx
	debugProject(w.debug, &w.pctx)

	return &w.pctx, nil
}

// Open resolves the project and opens its ticket directory, creating it when
// missing. The result is memoized for the invocation.
func (w *workspace) Open() (*project.Context, *ticket.Store, error) {
	if w.opened {
		return &w.pctx, w.store, w.err
	}

	w.opened = true

	pctx, err := w.Project()
	if err != nil {
		w.err = err

		return nil, nil, err
	}

	w.store, w.err = ticket.Open(pctx.Dir())

	return pctx, w.store, w.err
}
