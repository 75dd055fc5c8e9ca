package render

import (
	"math"

	"github.com/coreman2200/funtimes-silopad/internal/palette"
)

// Apply runs brightness scaling then the white cap over f.
func (p PostPipeline) Apply(f *Frame) {
	for y := range f {
		for x := range f[y] {
			c := f[y][x]
			if p.Brightness > 0 && p.Brightness < 1 {
				c = c.Scale(p.Brightness)
			}
			f[y][x] = applyWhiteCap(c, p.WhiteCap)
		}
	}
}

// applyWhiteCap clamps a pixel so r+g+b <= whiteCap*3*255
func applyWhiteCap(c palette.RGB, whiteCap float64) palette.RGB {
	if whiteCap <= 0 || whiteCap >= 1 {
		return c
	}
	limit := whiteCap * 3.0 * 255.0
	s := float64(c.R) + float64(c.G) + float64(c.B)
	if s <= limit || s == 0 {
		return c
	}
	scale := limit / s
	return palette.RGB{
		R: uint8(math.Round(float64(c.R) * scale)),
		G: uint8(math.Round(float64(c.G) * scale)),
		B: uint8(math.Round(float64(c.B) * scale)),
	}
}
