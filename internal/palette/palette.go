package palette

import (
	"fmt"
	"math"
)

// RGB is an 8-bit per channel pixel color as written to the panel.
type RGB struct{ R, G, B uint8 }

// Off is the unlit pixel.
var Off = RGB{}

// Hue names one of the fixed hue/saturation pairs used for pad colors.
type Hue byte

const (
	Red    Hue = 'r'
	Orange Hue = 'o'
	Yellow Hue = 'y'
	Green  Hue = 'g'
	Blue   Hue = 'b'
	Indigo Hue = 'i'
	Violet Hue = 'v'
	White  Hue = 'w'
)

type hueSat struct{ deg, sat float64 }

var hues = map[Hue]hueSat{
	Red:    {0, 1},
	Orange: {28, 1},
	Yellow: {58, 1},
	Green:  {100, 1},
	Blue:   {225, 1},
	Indigo: {290, 1},
	Violet: {324, 0.98},
	White:  {0, 0},
}

// ParseHue accepts a single hue letter (r,o,y,g,b,i,v,w).
func ParseHue(s string) (Hue, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("palette: bad hue %q", s)
	}
	h := Hue(s[0])
	if _, ok := hues[h]; !ok {
		return 0, fmt.Errorf("palette: unknown hue %q", s)
	}
	return h, nil
}

func (h Hue) String() string { return string(rune(h)) }

// HSVToRGB converts a hue in degrees plus saturation and brightness in [0,1]
// into a pixel. Zero saturation yields a rounded gray; otherwise every channel
// is truncated.
func HSVToRGB(h, s, v float64) RGB {
	if s == 0 {
		g := channel(math.Round(v * 255))
		return RGB{g, g, g}
	}
	hh := h / 360
	i := int(hh * 6)
	f := hh*6 - float64(i)

	p := float64(int(255 * (v * (1 - s))))
	q := float64(int(255 * (v * (1 - s*f))))
	t := float64(int(255 * (v * (1 - s*(1-f)))))
	v *= 255

	switch ((i % 6) + 6) % 6 {
	case 0:
		return rgb(v, t, p)
	case 1:
		return rgb(q, v, p)
	case 2:
		return rgb(p, v, t)
	case 3:
		return rgb(p, q, v)
	case 4:
		return rgb(t, p, v)
	default:
		return rgb(v, p, q)
	}
}

// Named returns the color for hue h at brightness level in [0,100].
// Unknown hues map to Off.
func Named(level float64, h Hue) RGB {
	hs, ok := hues[h]
	if !ok {
		return Off
	}
	return HSVToRGB(hs.deg, hs.sat, level/100)
}

// Scale multiplies every channel by f, truncating.
func (c RGB) Scale(f float64) RGB {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		return Off
	}
	return rgb(float64(c.R)*f, float64(c.G)*f, float64(c.B)*f)
}

// Gain multiplies every channel by f, clamping at 255. Unlike Scale it can
// brighten.
func (c RGB) Gain(f float64) RGB {
	return rgb(float64(c.R)*f, float64(c.G)*f, float64(c.B)*f)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c RGB) IsOff() bool { return c == Off }

func rgb(r, g, b float64) RGB { return RGB{channel(r), channel(g), channel(b)} }

func channel(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}
