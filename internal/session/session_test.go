package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
)

func press(s *State, xy ...[2]int) Outcome {
	var out Outcome
	for _, p := range xy {
		out = s.OnPress(p[0], p[1])
	}
	return out
}

var (
	selTrack1  = [2]int{0, 0}
	selFX      = [2]int{4, 0}
	gridx1col0 = [2]int{0, 1}
	gridx1col4 = [2]int{4, 1}
	enc1col2   = [2]int{2, 5}
	control1   = [2]int{5, 0}
	control12  = [2]int{7, 3}
	macro1     = [2]int{5, 5}
	macro2     = [2]int{5, 6}
	multHalf   = [2]int{6, 5}
	multNeg    = [2]int{6, 6}
	random     = [2]int{7, 5}
	gridMode   = [2]int{7, 6}
	clearPad   = [2]int{6, 7}
	assignPad  = [2]int{7, 7}
)

func TestNewStateNeutral(t *testing.T) {
	s := NewState(layout.Silos)
	assert.Equal(t, layout.NoTarget, s.Select)
	assert.Zero(t, s.Control)
	assert.True(t, s.Controller.IsZero())
	assert.Zero(t, s.Macro)
	assert.Equal(t, layout.One, s.Multiplier)
	assert.Equal(t, 1, s.GridMode)
	for _, a := range s.Assignments {
		assert.Equal(t, layout.NoTarget, a)
	}
}

func TestScenarioAssignControl(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, selTrack1)
	assert.Equal(t, layout.Track1, s.Select)
	press(s, gridx1col0)
	assert.Equal(t, Ref{layout.Controller{Kind: layout.GridX, Index: 1}, 0}, s.Controller)
	press(s, control1)
	assert.Equal(t, 1, s.Control)

	out := press(s, assignPad)
	require.Equal(t, Committed, out.Result)
	assert.Equal(t, AssignControl, out.Commit.Kind)
	assert.Equal(t, "gridx 1 1 1", out.Commit.Prompt())
	assert.Equal(t, layout.Track1, s.Assigned(layout.Controller{Kind: layout.GridX, Index: 1}))
	assert.Zero(t, s.Control)
	assert.True(t, s.Controller.IsZero())
}

func TestScenarioMacroControl(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, macro1)
	assert.Equal(t, 1, s.Macro)
	press(s, selTrack1, control1)
	out := press(s, assignPad)
	require.Equal(t, Committed, out.Result)
	assert.Equal(t, MacroControl, out.Commit.Kind)
	assert.Equal(t, 1, s.MacroCount(1, layout.Track1))
	assert.Zero(t, s.Control)
	assert.Zero(t, s.Macro)
	assert.Equal(t, layout.One, s.Multiplier)
}

func TestScenarioMultiplierRoundTrip(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, multHalf)
	assert.Equal(t, layout.Half, s.Multiplier)
	press(s, multHalf)
	assert.Equal(t, layout.One, s.Multiplier)
}

func TestScenarioClearVoidsMultiplier(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, multNeg)
	assert.Equal(t, layout.NegOne, s.Multiplier)
	press(s, clearPad)
	assert.Equal(t, layout.One, s.Multiplier)
	assert.True(t, s.MacroClear)
}

func TestScenarioCapBlocksAssign(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, selTrack1, gridx1col0)
	s.Control = 20
	before := *s
	out := press(s, assignPad)
	assert.Equal(t, NoOp, out.Result)
	assert.Nil(t, out.Commit)
	assert.Equal(t, before, *s)
}

func TestCapUsesControllerColumn(t *testing.T) {
	s := NewState(layout.Silos)
	// fx accepts 11 controls, control 12 must not commit
	press(s, selTrack1, gridx1col4, control12)
	before := *s
	assert.Equal(t, NoOp, press(s, assignPad).Result)
	assert.Equal(t, before, *s)

	// on a track column the same control commits
	press(s, gridx1col0)
	out := press(s, assignPad)
	require.Equal(t, Committed, out.Result)
	assert.Equal(t, 12, out.Commit.Control)
}

func TestMutualExclusion(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, enc1col2)
	staged := s.Controller
	for _, m := range [][2]int{macro1, macro2, {5, 7}} {
		out := press(s, m)
		assert.Equal(t, Rejected, out.Result)
		assert.Zero(t, s.Macro)
		assert.Equal(t, staged, s.Controller)
	}

	s = NewState(layout.Silos)
	press(s, macro2)
	for y := 1; y < layout.Size; y++ {
		for x := 0; x < layout.NumTargets; x++ {
			out := s.OnPress(x, y)
			assert.Equal(t, Rejected, out.Result, "(%d,%d)", x, y)
			assert.True(t, s.Controller.IsZero())
			assert.Equal(t, 2, s.Macro)
		}
	}
}

func TestControllerStaging(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, gridx1col0)
	press(s, enc1col2)
	assert.Equal(t, Ref{layout.Controller{Kind: layout.Enc, Index: 1}, 2}, s.Controller)
	press(s, enc1col2)
	assert.True(t, s.Controller.IsZero())
}

func TestControlAndMacroToggle(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, control1)
	press(s, control12)
	assert.Equal(t, 12, s.Control)
	press(s, control12)
	assert.Zero(t, s.Control)

	press(s, macro1, macro2)
	assert.Equal(t, 2, s.Macro)
	press(s, macro2)
	assert.Zero(t, s.Macro)
}

func TestMultiplierDomain(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, multHalf, multNeg)
	assert.Equal(t, layout.NegHalf, s.Multiplier)
	assert.True(t, s.MultiplierActive(layout.Half))
	assert.True(t, s.MultiplierActive(layout.NegOne))

	// both applied: either pad removes its own factor
	press(s, multHalf)
	assert.Equal(t, layout.NegOne, s.Multiplier)
	press(s, multHalf)
	assert.Equal(t, layout.NegHalf, s.Multiplier)
	press(s, multNeg)
	assert.Equal(t, layout.Half, s.Multiplier)
	press(s, multHalf)
	assert.Equal(t, layout.One, s.Multiplier)
	assert.False(t, s.MultiplierActive(layout.Half))
}

func TestMultiplyVoidsClear(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, clearPad)
	require.True(t, s.MacroClear)
	press(s, multHalf)
	assert.False(t, s.MacroClear)
	assert.Equal(t, layout.Half, s.Multiplier)

	// removing a factor leaves clear alone
	press(s, clearPad)
	s.Multiplier = layout.Half
	press(s, multHalf)
	assert.True(t, s.MacroClear)
}

func TestClearMacroCommit(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, macro1, selTrack1, control1, assignPad)
	press(s, macro1, selFX, control1, assignPad)
	require.Equal(t, 1, s.MacroCount(1, layout.FX))

	press(s, macro1, clearPad)
	out := press(s, assignPad)
	require.Equal(t, Committed, out.Result)
	assert.Equal(t, ClearMacro, out.Commit.Kind)
	assert.Equal(t, [layout.NumTargets]int{}, s.Macros[0])
	assert.Zero(t, s.Macro)
	assert.False(t, s.MacroClear)
	assert.Equal(t, layout.One, s.Multiplier)
}

func TestMacroCommitClearsRandomAndMultiplier(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, random, multNeg, macro2, selTrack1, control1)
	out := press(s, assignPad)
	require.Equal(t, Committed, out.Result)
	assert.Equal(t, layout.NegOne, out.Commit.Multiplier)
	assert.False(t, s.Random)
	assert.Equal(t, layout.One, s.Multiplier)
	assert.Equal(t, 1, s.MacroCount(2, layout.Track1))
}

func TestRandomCommit(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, random, multHalf, selFX, control1)
	out := press(s, assignPad)
	require.Equal(t, Committed, out.Result)
	assert.Equal(t, RandomControl, out.Commit.Kind)
	assert.Equal(t, layout.FX, out.Commit.Target)
	assert.False(t, s.Random)
	assert.Zero(t, s.Control)
	assert.Equal(t, layout.One, s.Multiplier)
	assert.Equal(t, layout.FX, s.Select)
}

func TestAssignWithoutGuardIsNoOp(t *testing.T) {
	cases := map[string][][2]int{
		"empty":              nil,
		"control only":       {control1},
		"controller only":    {gridx1col0},
		"select and control": {selTrack1, control1},
		"macro no control":   {macro1, selTrack1},
		"random no select":   {random, control1},
	}
	for name, presses := range cases {
		t.Run(name, func(t *testing.T) {
			s := NewState(layout.Silos)
			press(s, presses...)
			before := *s
			assert.Equal(t, NoOp, press(s, assignPad).Result)
			assert.Equal(t, before, *s)
		})
	}
}

func TestGridModeCycles(t *testing.T) {
	s := NewState(layout.Silos)
	out := press(s, gridMode)
	assert.Equal(t, Pulsed, out.Result)
	assert.Equal(t, 2, s.GridMode)
	press(s, gridMode)
	assert.Equal(t, 1, s.GridMode)
}

func TestMachineHooks(t *testing.T) {
	var commits []Commit
	var rejects []Outcome
	m := NewMachine(layout.Silos, Hooks{
		OnCommit: func(c Commit) { commits = append(commits, c) },
		OnReject: func(o Outcome) { rejects = append(rejects, o) },
	})
	m.Press(0, 0)
	m.Press(0, 1)
	m.Press(5, 5)
	assert.Equal(t, Rejected, m.Last().Result)
	m.Press(5, 0)
	m.Press(7, 7)

	require.Len(t, commits, 1)
	assert.Equal(t, AssignControl, commits[0].Kind)
	require.Len(t, rejects, 1)
	assert.Equal(t, "controller selected", rejects[0].Reason)
	assert.Equal(t, layout.Track1, m.Snapshot().Assignments[0])
}

func TestSummary(t *testing.T) {
	s := NewState(layout.Silos)
	press(s, selTrack1, gridx1col0, control1, assignPad)
	sum := s.Summary()
	assert.Contains(t, sum, "gridx1   track1")
	assert.Contains(t, sum, "enc 1 [0 0 0 0 0]")
}
