package layout

import "fmt"

// Size is the edge length of the pad grid.
const Size = 8

// Kind tags what a pad means on a page.
type Kind int

const (
	Select Kind = iota
	ControllerSlot
	ControlNumber
	Macro
	MacroMultiplier
	MacroClear
	RandomToggle
	ModeCycle
	Assign
)

var kindNames = [...]string{
	Select:          "select",
	ControllerSlot:  "controller",
	ControlNumber:   "control_number",
	Macro:           "macro",
	MacroMultiplier: "macro_mult",
	MacroClear:      "macro_clear",
	RandomToggle:    "random",
	ModeCycle:       "grid_mode",
	Assign:          "assign",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Region is the meaning of a single pad. Only the fields relevant to Kind
// are set: Value carries the target column, control number or macro id,
// Controller is set for ControllerSlot and Factor for MacroMultiplier.
type Region struct {
	Kind       Kind
	Value      int
	Controller Controller
	Factor     Multiplier
}

func (r Region) String() string {
	switch r.Kind {
	case Select:
		return fmt.Sprintf("select %s", Target(r.Value))
	case ControllerSlot:
		return fmt.Sprintf("%s-%d", r.Controller, r.Value)
	case ControlNumber, Macro:
		return fmt.Sprintf("%s %d", r.Kind, r.Value)
	case MacroMultiplier:
		return fmt.Sprintf("%s %s", r.Kind, r.Factor)
	default:
		return r.Kind.String()
	}
}

// Page names a pad layout.
type Page string

// Silos is the assignment page for the silos script.
const Silos Page = "silos"

// Grid is a full page mapping indexed [y][x].
type Grid [Size][Size]Region

var pages = map[Page]*Grid{
	Silos: buildSilos(),
}

// Pages lists the known page names.
func Pages() []Page {
	out := make([]Page, 0, len(pages))
	for p := range pages {
		out = append(out, p)
	}
	return out
}

// Classify returns the region at (x, y) on page. Coordinates outside the
// grid and unknown pages are programming errors and panic.
func Classify(page Page, x, y int) Region {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		panic(fmt.Sprintf("layout: coordinate (%d,%d) out of range", x, y))
	}
	return table(page)[y][x]
}

// Enumerate returns a copy of the whole page mapping.
func Enumerate(page Page) Grid {
	return *table(page)
}

func table(page Page) *Grid {
	g, ok := pages[page]
	if !ok {
		panic(fmt.Sprintf("layout: unknown page %q", page))
	}
	return g
}

func buildSilos() *Grid {
	var g Grid
	for x := 0; x < NumTargets; x++ {
		g[0][x] = Region{Kind: Select, Value: x}
	}
	// control numbers 1..15 fill columns 5-7 of rows 0-4
	n := 1
	for y := 0; y < 5; y++ {
		for x := 5; x < Size; x++ {
			g[y][x] = Region{Kind: ControlNumber, Value: n}
			n++
		}
	}
	for i, c := range Controllers() {
		for x := 0; x < NumTargets; x++ {
			g[i+1][x] = Region{Kind: ControllerSlot, Value: x, Controller: c}
		}
	}
	for m := 1; m <= NumMacros; m++ {
		g[4+m][5] = Region{Kind: Macro, Value: m}
	}
	g[5][6] = Region{Kind: MacroMultiplier, Factor: Half}
	g[5][7] = Region{Kind: RandomToggle}
	g[6][6] = Region{Kind: MacroMultiplier, Factor: NegOne}
	g[6][7] = Region{Kind: ModeCycle}
	g[7][6] = Region{Kind: MacroClear}
	g[7][7] = Region{Kind: Assign}
	return &g
}
