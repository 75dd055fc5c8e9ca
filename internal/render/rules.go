package render

import (
	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/session"
)

// RoleFor picks the color role of region r for state s. It only reads s.
func RoleFor(r layout.Region, s *session.State) Role {
	switch r.Kind {
	case layout.Select:
		if s.Select == layout.Target(r.Value) {
			return SelectOn
		}
		return SelectOff

	case layout.ControlNumber:
		if s.Control == r.Value {
			return ControlOn
		}
		return ControlOff

	case layout.Macro:
		if s.Macro == r.Value {
			return MacroOn
		}
		return MacroOff

	case layout.MacroMultiplier:
		if s.MultiplierActive(r.Factor) {
			return MacroMult
		}
		return Off

	case layout.ControllerSlot:
		col := layout.Target(r.Value)
		switch {
		case s.Controller == session.Ref{Controller: r.Controller, Column: col}:
			return Controller
		case r.Controller.Kind == layout.Enc && s.MacroCount(r.Controller.Index, col) > 0:
			return MacroSet
		case s.Assigned(r.Controller) == col:
			return Assignment
		}
		return Off

	case layout.MacroClear:
		if s.MacroClear {
			return MacroClear
		}
		return Off

	case layout.RandomToggle:
		if s.Random {
			return ModeSet
		}
		return Mode

	case layout.ModeCycle:
		return Mode

	case layout.Assign:
		return AssignOff
	}
	return Off
}

// Flash is a one-cycle overlay on the pad that was just pressed.
type Flash struct {
	X, Y int
	Role Role
}

// FlashFor derives the overlay for a press outcome, or nil.
func FlashFor(o session.Outcome) *Flash {
	var role Role
	switch o.Result {
	case session.Rejected:
		role = Error
	case session.Pulsed:
		role = ModeSet
	case session.Committed:
		role = AssignOn
	default:
		return nil
	}
	return &Flash{X: o.X, Y: o.Y, Role: role}
}
