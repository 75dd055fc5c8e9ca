package layout

// Strip maps pad coordinates onto a chained LED strip laid out in rows.
type Strip struct {
	Width, Height int
	// Serpentine reverses every odd row.
	Serpentine bool
}

// Index maps x,y -> linear LED index (0..N-1)
func (s Strip) Index(x, y int) int {
	xx := x
	if s.Serpentine && y%2 == 1 {
		xx = s.Width - 1 - x
	}
	return y*s.Width + xx
}

func (s Strip) Count() int {
	return s.Width * s.Height
}
