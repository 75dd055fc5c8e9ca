package render

import (
	"fmt"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
)

// Frame is a full pad image indexed [y][x].
type Frame [layout.Size][layout.Size]palette.RGB

// At returns the pixel at (x, y).
func (f *Frame) At(x, y int) palette.RGB { return f[y][x] }

// Bytes flattens the frame row by row into r,g,b triples.
func (f *Frame) Bytes() []byte {
	out := make([]byte, 0, layout.Size*layout.Size*3)
	for y := range f {
		for x := range f[y] {
			c := f[y][x]
			out = append(out, c.R, c.G, c.B)
		}
	}
	return out
}

// Role is a named color slot of the scheme.
type Role string

const (
	SelectOff  Role = "select_off"
	SelectOn   Role = "select_on"
	ControlOff Role = "control_off"
	ControlOn  Role = "control_on"
	Controller Role = "controller"
	MacroOff   Role = "macro_off"
	MacroOn    Role = "macro_on"
	MacroMult  Role = "macro_mult"
	MacroClear Role = "macro_clear"
	MacroSet   Role = "macro"
	Assignment Role = "assignment"
	Mode       Role = "mode"
	ModeSet    Role = "mode_set"
	AssignOff  Role = "assign_off"
	AssignOn   Role = "assign_on"
	Error      Role = "error"
	Off        Role = "off"
)

// Shade is a role color given as brightness level (0..100) and hue letter.
type Shade struct {
	Level float64
	Hue   palette.Hue
}

var defaultShades = map[Role]Shade{
	SelectOff:  {7, palette.Orange},
	SelectOn:   {40, palette.Orange},
	ControlOff: {2, palette.Orange},
	ControlOn:  {20, palette.Orange},
	Controller: {20, palette.Orange},
	MacroOff:   {0.5, palette.Blue},
	MacroOn:    {2, palette.Blue},
	MacroMult:  {2, palette.Blue},
	MacroClear: {1, palette.Red},
	MacroSet:   {1, palette.Blue},
	Assignment: {2, palette.Orange},
	Mode:       {1, palette.White},
	ModeSet:    {7, palette.White},
	AssignOff:  {2, palette.Orange},
	AssignOn:   {40, palette.Orange},
	Error:      {2, palette.Red},
}

// Scheme maps roles to pixel colors.
type Scheme map[Role]palette.RGB

// DefaultScheme is the stock pad palette.
func DefaultScheme() Scheme {
	s := Scheme{Off: palette.Off}
	for r, sh := range defaultShades {
		s[r] = palette.Named(sh.Level, sh.Hue)
	}
	return s
}

// NewScheme starts from DefaultScheme and applies overrides.
func NewScheme(overrides map[Role]Shade) (Scheme, error) {
	s := DefaultScheme()
	for r, sh := range overrides {
		if _, ok := defaultShades[r]; !ok {
			return nil, fmt.Errorf("render: unknown color role %q", r)
		}
		s[r] = palette.Named(sh.Level, sh.Hue)
	}
	return s, nil
}

// Color returns the color for role, Off when unset.
func (s Scheme) Color(r Role) palette.RGB {
	if c, ok := s[r]; ok {
		return c
	}
	return palette.Off
}
