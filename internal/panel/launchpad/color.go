package launchpad

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/funtimes-silopad/internal/palette"
)

type swatch struct {
	vel uint8
	c   colorful.Color
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Approximate RGB of a subset of the Launchpad X velocity palette.
var swatches = []swatch{
	{5, rgb(255, 0, 0)},
	{6, rgb(255, 80, 80)},
	{7, rgb(180, 60, 60)},
	{9, rgb(255, 100, 0)},
	{11, rgb(180, 80, 40)},
	{13, rgb(255, 200, 0)},
	{17, rgb(0, 180, 0)},
	{21, rgb(0, 255, 0)},
	{37, rgb(0, 200, 200)},
	{43, rgb(40, 60, 120)},
	{45, rgb(0, 100, 255)},
	{47, rgb(80, 150, 255)},
	{49, rgb(150, 0, 200)},
	{53, rgb(255, 80, 180)},
	{84, rgb(255, 150, 50)},
	{119, rgb(255, 255, 255)},
}

// Nearest maps c to the closest palette velocity. The pad palette runs at
// very low levels, so hue is matched on the color stretched to full value
// in Lab space; only black maps to 0.
func Nearest(c palette.RGB) uint8 {
	if c.IsOff() {
		return 0
	}
	h, s, _ := rgb(c.R, c.G, c.B).Hsv()
	full := colorful.Hsv(h, s, 1)

	best, bestDist := uint8(0), 1e9
	for _, sw := range swatches {
		if d := full.DistanceLab(sw.c); d < bestDist {
			best, bestDist = sw.vel, d
		}
	}
	return best
}
