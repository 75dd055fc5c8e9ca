package session

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
)

// Result classifies what a press did.
type Result int

const (
	Changed Result = iota
	Rejected
	NoOp
	Pulsed
	Committed
)

func (r Result) String() string {
	switch r {
	case Changed:
		return "changed"
	case Rejected:
		return "rejected"
	case NoOp:
		return "noop"
	case Pulsed:
		return "pulsed"
	case Committed:
		return "committed"
	}
	return "unknown"
}

// CommitKind names the Assign rule that fired.
type CommitKind int

const (
	AssignControl CommitKind = iota + 1
	ClearMacro
	MacroControl
	RandomControl
)

func (k CommitKind) String() string {
	switch k {
	case AssignControl:
		return "assign_control"
	case ClearMacro:
		return "clear_macro"
	case MacroControl:
		return "macro_control"
	case RandomControl:
		return "random_control"
	}
	return "none"
}

// Commit describes a table mutation (or a randomize request) produced by
// Assign. Fields not used by Kind are left zero.
type Commit struct {
	Kind       CommitKind
	Controller layout.Controller
	Target     layout.Target
	Control    int
	Macro      int
	Multiplier layout.Multiplier
}

// Prompt is the line typed into the synth for a control assignment,
// e.g. "gridx 1 fx 5". Other kinds describe themselves.
func (c Commit) Prompt() string {
	switch c.Kind {
	case AssignControl:
		return fmt.Sprintf("%s %d %s %d", c.Controller.Kind, c.Controller.Index, c.Target.Prompt(), c.Control)
	case ClearMacro:
		return fmt.Sprintf("macro %d cleared", c.Macro)
	case MacroControl:
		return fmt.Sprintf("control %d for %s --> macro %d", c.Control, c.Target, c.Macro)
	case RandomControl:
		return fmt.Sprintf("random control %d to %s", c.Control, c.Target)
	}
	return ""
}

// Outcome reports a single press.
type Outcome struct {
	X, Y   int
	Region layout.Region
	Result Result
	Reason string
	Commit *Commit
}

// OnPress applies a rising-edge press at (x, y).
func (s *State) OnPress(x, y int) Outcome {
	r := layout.Classify(s.Page, x, y)
	out := Outcome{X: x, Y: y, Region: r, Result: Changed}

	switch r.Kind {
	case layout.Select:
		s.Select = layout.Target(r.Value)
		log.Debug().Str("select", s.Select.String()).Msg("select")

	case layout.ControllerSlot:
		ref := Ref{Controller: r.Controller, Column: layout.Target(r.Value)}
		switch {
		case s.Macro != 0:
			out.Result, out.Reason = Rejected, "macro selected"
		case s.Controller == ref:
			s.Controller = Ref{}
		default:
			s.Controller = ref
		}
		log.Debug().Str("controller", s.Controller.String()).Str("result", out.Result.String()).Msg("controller")

	case layout.ControlNumber:
		if s.Control == r.Value {
			s.Control = 0
		} else {
			s.Control = r.Value
		}
		log.Debug().Int("control", s.Control).Msg("control")

	case layout.Macro:
		switch {
		case !s.Controller.IsZero():
			out.Result, out.Reason = Rejected, "controller selected"
		case s.Macro == r.Value:
			s.Macro = 0
		default:
			s.Macro = r.Value
		}
		log.Debug().Int("macro", s.Macro).Str("result", out.Result.String()).Msg("macro")

	case layout.MacroMultiplier:
		var applied bool
		s.Multiplier, applied = toggle(s.Multiplier, r.Factor)
		if applied {
			s.MacroClear = false
		}
		log.Debug().Str("macro_mult", s.Multiplier.String()).Msg("macro_mult")

	case layout.MacroClear:
		s.MacroClear = !s.MacroClear
		if s.MacroClear {
			s.Multiplier = layout.One
		}
		log.Debug().Bool("macro_clear", s.MacroClear).Msg("macro_clear")

	case layout.RandomToggle:
		s.Random = !s.Random
		log.Debug().Bool("random", s.Random).Msg("random")

	case layout.ModeCycle:
		s.GridMode = s.GridMode%GridModes + 1
		out.Result = Pulsed
		log.Debug().Int("grid_mode", s.GridMode).Msg("grid_mode")

	case layout.Assign:
		out.Commit = s.assign()
		if out.Commit == nil {
			out.Result = NoOp
		} else {
			out.Result = Committed
		}
	}
	if out.Result == Rejected {
		log.Debug().Str("region", r.String()).Str("reason", out.Reason).Msg("press rejected")
	}
	return out
}

// assign evaluates the Assign rules in order; the first whose guard holds
// fires. It returns nil and leaves the state untouched when none hold.
func (s *State) assign() *Commit {
	if s.Control != 0 && !s.Controller.IsZero() &&
		s.Control <= layout.MaxControls(s.Controller.Column) {
		c := &Commit{
			Kind:       AssignControl,
			Controller: s.Controller.Controller,
			Target:     s.Controller.Column,
			Control:    s.Control,
			Multiplier: s.Multiplier,
		}
		s.Assignments[s.Controller.Controller.Slot()] = s.Controller.Column
		s.Control = 0
		s.Controller = Ref{}
		return c
	}

	if s.Macro != 0 && s.MacroClear {
		c := &Commit{Kind: ClearMacro, Macro: s.Macro, Multiplier: s.Multiplier}
		s.Macros[s.Macro-1] = [layout.NumTargets]int{}
		s.Macro = 0
		s.MacroClear = false
		s.Multiplier = layout.One
		s.Control = 0
		s.Controller = Ref{}
		return c
	}

	if s.Select.Valid() && s.Control != 0 && s.Macro != 0 &&
		s.Control <= layout.MaxControls(s.Select) {
		c := &Commit{
			Kind:       MacroControl,
			Target:     s.Select,
			Control:    s.Control,
			Macro:      s.Macro,
			Multiplier: s.Multiplier,
		}
		s.Macros[s.Macro-1][s.Select]++
		s.Control = 0
		s.Macro = 0
		s.Multiplier = layout.One
		s.Random = false
		return c
	}

	if s.Select.Valid() && s.Control != 0 && s.Random &&
		s.Control <= layout.MaxControls(s.Select) {
		c := &Commit{
			Kind:       RandomControl,
			Target:     s.Select,
			Control:    s.Control,
			Multiplier: s.Multiplier,
		}
		s.Control = 0
		s.Random = false
		s.Multiplier = layout.One
		return c
	}
	return nil
}
