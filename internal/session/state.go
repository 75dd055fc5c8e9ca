package session

import (
	"fmt"
	"strings"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
)

// GridModes is the number of grid modes ModeCycle steps through.
const GridModes = 2

// Ref is a staged controller pad: which controller, and the target column
// the pad sits in.
type Ref struct {
	Controller layout.Controller
	Column     layout.Target
}

func (r Ref) IsZero() bool { return r.Controller.IsZero() }

func (r Ref) String() string {
	if r.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%s-%d", r.Controller, r.Column)
}

// State is the panel's interaction state. It holds no references, so a copy
// is a full snapshot. Zero values of Control and Macro, a zero Controller and
// NoTarget mean "nothing staged".
type State struct {
	Page layout.Page

	Select     layout.Target
	Control    int
	Controller Ref
	Macro      int

	Multiplier layout.Multiplier
	MacroClear bool
	Random     bool
	GridMode   int

	Assignments [layout.NumControllers]layout.Target
	Macros      [layout.NumMacros][layout.NumTargets]int
}

// NewState returns the neutral startup state for page.
func NewState(page layout.Page) *State {
	s := &State{
		Page:       page,
		Select:     layout.NoTarget,
		Multiplier: layout.One,
		GridMode:   1,
	}
	for i := range s.Assignments {
		s.Assignments[i] = layout.NoTarget
	}
	return s
}

// Assigned returns the target column c is assigned to, or NoTarget.
func (s *State) Assigned(c layout.Controller) layout.Target {
	i := c.Slot()
	if i < 0 {
		return layout.NoTarget
	}
	return s.Assignments[i]
}

// MacroCount returns how many controls macro m (1..3) drives on target t.
func (s *State) MacroCount(m int, t layout.Target) int {
	if m < 1 || m > layout.NumMacros || !t.Valid() {
		return 0
	}
	return s.Macros[m-1][t]
}

// MultiplierActive reports whether the multiplier pad for factor f is lit.
func (s *State) MultiplierActive(f layout.Multiplier) bool {
	return has(s.Multiplier, f)
}

// Summary renders the assignment and macro tables.
func (s *State) Summary() string {
	var b strings.Builder
	b.WriteString(":: assignments ::\n")
	for _, c := range layout.Controllers() {
		fmt.Fprintf(&b, "%-9s%s\n", c, s.Assigned(c))
	}
	b.WriteString(":: macros ::\n")
	for m := 1; m <= layout.NumMacros; m++ {
		fmt.Fprintf(&b, "enc %d %v\n", m, s.Macros[m-1])
	}
	return b.String()
}
