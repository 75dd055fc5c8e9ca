// Package panel defines the pad hardware boundary: edge events in, pixels
// out, and a periodic sync that flushes both.
package panel

import (
	"errors"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
)

// Edge is the direction of a key transition.
type Edge int

const (
	Rising Edge = iota + 1
	Falling
)

func (e Edge) String() string {
	switch e {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	}
	return "none"
}

// Event is a key transition at grid coordinate (X, Y).
type Event struct {
	X, Y int
	Edge Edge
}

// Panel is an 8x8 pad grid. Poll never blocks; SetPixel only stages the
// color and Sync pushes staged pixels and collects pending key events.
type Panel interface {
	Poll() (Event, bool)
	SetPixel(x, y int, c palette.RGB)
	Sync() error
	Close() error
}

// InGrid reports whether (x, y) is a pad coordinate.
func InGrid(x, y int) bool {
	return x >= 0 && x < layout.Size && y >= 0 && y < layout.Size
}

type tee struct {
	panels []Panel
	next   int
}

// Tee fans pixels out to every panel and merges their events. Events are
// taken round-robin so a chatty mirror cannot starve the primary.
func Tee(primary Panel, mirrors ...Panel) Panel {
	if len(mirrors) == 0 {
		return primary
	}
	return &tee{panels: append([]Panel{primary}, mirrors...)}
}

func (t *tee) Poll() (Event, bool) {
	for i := 0; i < len(t.panels); i++ {
		p := t.panels[(t.next+i)%len(t.panels)]
		if ev, ok := p.Poll(); ok {
			t.next = (t.next + i + 1) % len(t.panels)
			return ev, true
		}
	}
	return Event{}, false
}

func (t *tee) SetPixel(x, y int, c palette.RGB) {
	for _, p := range t.panels {
		p.SetPixel(x, y, c)
	}
}

func (t *tee) Sync() error {
	var errs []error
	for _, p := range t.panels {
		if err := p.Sync(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *tee) Close() error {
	var errs []error
	for _, p := range t.panels {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
