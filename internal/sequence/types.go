package sequence

// Step is one scripted press: after waiting WaitMs from the previous step
// the pad at Press goes down, and it is released HoldMs later.
type Step struct {
	Press  [2]int `yaml:"press" json:"press"`
	WaitMs int    `yaml:"wait_ms,omitempty" json:"wait_ms,omitempty"`
	HoldMs int    `yaml:"hold_ms,omitempty" json:"hold_ms,omitempty"`
	Note   string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Program is a full press script.
type Program struct {
	Version string `yaml:"version" json:"version"` // e.g., "press.v1"
	Page    string `yaml:"page,omitempty" json:"page,omitempty"`
	Loop    bool   `yaml:"loop,omitempty" json:"loop,omitempty"`
	Steps   []Step `yaml:"steps" json:"steps"`
}

// PlayerState enumerates player states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are dependency-injected callbacks into the pad input.
type Hooks struct {
	Press   func(x, y int)
	Release func(x, y int)
	// Step is told about each step as it fires.
	Step func(i int, s Step)
}

type release struct {
	at   float64
	x, y int
}

// Player owns the current Program timeline and uses Hooks to drive input.
type Player struct {
	State PlayerState

	prog Program
	nowS float64 // position within the current pass
	next float64 // time the step at idx fires
	idx  int

	held []release

	hooks Hooks
}
