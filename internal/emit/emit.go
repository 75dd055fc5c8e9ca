// Package emit delivers Assign commits to whatever drives the synth.
package emit

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-silopad/internal/session"
)

// Sink receives commits.
type Sink interface {
	Emit(session.Commit) error
}

// Func adapts a plain function to Sink.
type Func func(session.Commit) error

func (f Func) Emit(c session.Commit) error { return f(c) }

// Multi fans a commit out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Emit(c session.Commit) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log writes each commit to the structured log.
type Log struct{}

func (Log) Emit(c session.Commit) error {
	ev := log.Info().
		Str("kind", c.Kind.String()).
		Str("multiplier", c.Multiplier.String())
	switch c.Kind {
	case session.AssignControl:
		ev = ev.Str("controller", c.Controller.String()).Str("target", c.Target.String()).Int("control", c.Control)
	case session.ClearMacro:
		ev = ev.Int("macro", c.Macro)
	case session.MacroControl:
		ev = ev.Int("macro", c.Macro).Str("target", c.Target.String()).Int("control", c.Control)
	case session.RandomControl:
		ev = ev.Str("target", c.Target.String()).Int("control", c.Control)
	}
	ev.Msg(c.Prompt())
	return nil
}

// Hook returns a commit callback for session.Hooks that emits to s and logs
// failures.
func Hook(s Sink) func(session.Commit) {
	return func(c session.Commit) {
		if err := s.Emit(c); err != nil {
			log.Warn().Err(err).Str("prompt", c.Prompt()).Msg("emit failed")
		}
	}
}
