package layout

import "fmt"

// Target is a track or effect column of the Select row.
type Target int

const (
	// NoTarget marks an empty selection or an unassigned controller.
	NoTarget Target = -1

	Track1 Target = 0
	Track2 Target = 1
	Track3 Target = 2
	Track4 Target = 3
	FX     Target = 4

	NumTargets = 5
	NumMacros  = 3
)

var maxControls = [NumTargets]int{13, 13, 13, 13, 11}

// MaxControls is the highest control number target accepts.
func MaxControls(t Target) int {
	if t < 0 || int(t) >= NumTargets {
		return 0
	}
	return maxControls[t]
}

// Valid reports whether t names a column.
func (t Target) Valid() bool { return t >= 0 && int(t) < NumTargets }

func (t Target) String() string {
	switch {
	case t == FX:
		return "fx"
	case t.Valid():
		return fmt.Sprintf("track%d", int(t)+1)
	default:
		return "none"
	}
}

// Prompt is the target as typed into the synth: "1".."4" or "fx".
func (t Target) Prompt() string {
	if t == FX {
		return "fx"
	}
	return fmt.Sprintf("%d", int(t)+1)
}

// ControllerKind is the physical control class.
type ControllerKind int

const (
	GridX ControllerKind = iota + 1
	GridY
	Enc
)

func (k ControllerKind) String() string {
	switch k {
	case GridX:
		return "gridx"
	case GridY:
		return "gridy"
	case Enc:
		return "enc"
	}
	return "none"
}

// Controller identifies one physical controller, e.g. gridx 1 or enc 3.
// The zero value is no controller.
type Controller struct {
	Kind  ControllerKind
	Index int
}

// NumControllers is the number of controller rows.
const NumControllers = 7

var controllers = [NumControllers]Controller{
	{GridX, 1}, {GridY, 1}, {GridX, 2}, {GridY, 2}, {Enc, 1}, {Enc, 2}, {Enc, 3},
}

// Controllers lists controllers in row order (row 1 first).
func Controllers() []Controller {
	out := make([]Controller, NumControllers)
	copy(out, controllers[:])
	return out
}

// Slot is the controller's position in Controllers, or -1.
func (c Controller) Slot() int {
	for i, cc := range controllers {
		if cc == c {
			return i
		}
	}
	return -1
}

func (c Controller) IsZero() bool { return c == Controller{} }

func (c Controller) String() string {
	if c.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%s%d", c.Kind, c.Index)
}

// Multiplier is the macro multiplier. Its domain is closed: the two
// multiplier pads reach only these four values.
type Multiplier int8

const (
	One Multiplier = iota
	Half
	NegOne
	NegHalf
)

// Float is the numeric value of m.
func (m Multiplier) Float() float64 {
	switch m {
	case Half:
		return 0.5
	case NegOne:
		return -1
	case NegHalf:
		return -0.5
	}
	return 1
}

func (m Multiplier) String() string {
	switch m {
	case Half:
		return ".5"
	case NegOne:
		return "-1"
	case NegHalf:
		return "-.5"
	}
	return "1"
}
