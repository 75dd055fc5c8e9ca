package fake

import (
	"fmt"
	"io"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

// Panel records pixels and replays queued key events, useful for headless
// tests and replays. When Out is set every Sync prints a compact summary of
// the frame (lit pad count and the first lit pad).
type Panel struct {
	Out io.Writer

	Syncs   int
	Writes  int
	Closed  bool
	SyncErr error

	px     [layout.Size][layout.Size]palette.RGB
	events []panel.Event
}

func New() *Panel { return &Panel{} }

// Push queues ev for Poll.
func (p *Panel) Push(ev panel.Event) { p.events = append(p.events, ev) }

// Press queues a rising and a falling edge at (x, y).
func (p *Panel) Press(x, y int) {
	p.Push(panel.Event{X: x, Y: y, Edge: panel.Rising})
	p.Push(panel.Event{X: x, Y: y, Edge: panel.Falling})
}

// Pending is the number of queued events.
func (p *Panel) Pending() int { return len(p.events) }

func (p *Panel) Poll() (panel.Event, bool) {
	if len(p.events) == 0 {
		return panel.Event{}, false
	}
	ev := p.events[0]
	p.events = p.events[1:]
	return ev, true
}

func (p *Panel) SetPixel(x, y int, c palette.RGB) {
	p.px[y][x] = c
	p.Writes++
}

// Pixel returns the last color written at (x, y).
func (p *Panel) Pixel(x, y int) palette.RGB { return p.px[y][x] }

// Frame copies the grid, indexed [y][x].
func (p *Panel) Frame() [layout.Size][layout.Size]palette.RGB { return p.px }

func (p *Panel) Sync() error {
	p.Syncs++
	if p.Out != nil {
		lit, first := 0, "-"
		for y := range p.px {
			for x := range p.px[y] {
				if p.px[y][x].IsOff() {
					continue
				}
				if lit == 0 {
					first = fmt.Sprintf("(%d,%d)=%s", x, y, p.px[y][x].Hex())
				}
				lit++
			}
		}
		fmt.Fprintf(p.Out, "[sync %04d] lit=%d first=%s\n", p.Syncs, lit, first)
	}
	return p.SyncErr
}

func (p *Panel) Close() error {
	p.Closed = true
	return nil
}
