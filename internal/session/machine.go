package session

import (
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
)

// Hooks are dependency-injected callbacks fired after a press is applied.
type Hooks struct {
	// OnCommit receives every Assign commit.
	OnCommit func(Commit)
	// OnReject receives presses refused by the staging rules.
	OnReject func(Outcome)
}

// Machine owns the single State instance and routes outcomes to Hooks.
type Machine struct {
	State *State
	hooks Hooks
	last  Outcome
}

func NewMachine(page layout.Page, hooks Hooks) *Machine {
	return &Machine{State: NewState(page), hooks: hooks}
}

// Press handles a rising edge at (x, y).
func (m *Machine) Press(x, y int) Outcome {
	out := m.State.OnPress(x, y)
	m.last = out
	switch out.Result {
	case Committed:
		log.Info().
			Str("commit", out.Commit.Kind.String()).
			Str("prompt", out.Commit.Prompt()).
			Msg("assign")
		log.Debug().Msg(m.State.Summary())
		if m.hooks.OnCommit != nil {
			m.hooks.OnCommit(*out.Commit)
		}
	case Rejected:
		if m.hooks.OnReject != nil {
			m.hooks.OnReject(out)
		}
	}
	return out
}

// Last returns the most recent press outcome.
func (m *Machine) Last() Outcome { return m.last }

// Snapshot copies the current state.
func (m *Machine) Snapshot() State { return *m.State }
