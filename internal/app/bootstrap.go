package app

import (
	"errors"
	"fmt"
	"slices"
	"time"

	diag "github.com/coreman2200/funtimes-silopad/internal/diagnostics"
	"github.com/coreman2200/funtimes-silopad/internal/emit"
	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
	"github.com/coreman2200/funtimes-silopad/internal/render"
	"github.com/coreman2200/funtimes-silopad/internal/session"
)

// Options wires the core. Zero values pick defaults.
type Options struct {
	Page   layout.Page
	Scheme render.Scheme
	Post   render.PostPipeline

	// Poll is the loop tick; Flash how long a press overlay stays lit.
	Poll  time.Duration
	Flash time.Duration

	Sink emit.Sink
	// Diag receives reject, commit and panel fault reports.
	Diag func(diag.Diagnostic)
}

const (
	DefaultPoll  = 10 * time.Millisecond
	DefaultFlash = 150 * time.Millisecond
)

// Core owns the session, the renderer and the panel, and is driven by a
// single goroutine (Run or Tick).
type Core struct {
	Panel   panel.Panel
	Eng     *render.Engine
	Machine *session.Machine

	poll, hold time.Duration
	diag       func(diag.Diagnostic)

	flash      *render.Flash
	flashUntil time.Time
	dirty      bool
}

func NewCore(p panel.Panel, opts Options) (*Core, error) {
	if p == nil {
		return nil, errors.New("app: nil panel")
	}
	if opts.Page == "" {
		opts.Page = layout.Silos
	}
	if !slices.Contains(layout.Pages(), opts.Page) {
		return nil, fmt.Errorf("app: unknown page %q", opts.Page)
	}
	if opts.Poll <= 0 {
		opts.Poll = DefaultPoll
	}
	if opts.Flash <= 0 {
		opts.Flash = DefaultFlash
	}
	if opts.Sink == nil {
		opts.Sink = emit.Log{}
	}
	if opts.Diag == nil {
		opts.Diag = func(diag.Diagnostic) {}
	}

	eng, err := render.NewEngine(p, opts.Scheme, opts.Post)
	if err != nil {
		return nil, err
	}
	c := &Core{Panel: p, Eng: eng, poll: opts.Poll, hold: opts.Flash, diag: opts.Diag}

	sinkHook := emit.Hook(opts.Sink)
	hooks := session.Hooks{
		OnCommit: func(cm session.Commit) {
			sinkHook(cm)
			c.diag(diag.Committed(cm.Prompt()))
		},
		OnReject: func(o session.Outcome) {
			c.diag(diag.Rejected(o.X, o.Y, o.Region.String(), o.Reason))
		},
	}
	c.Machine = session.NewMachine(opts.Page, hooks)
	c.dirty = true
	return c, nil
}
