// Package selftest drives canned patterns onto a panel: the startup sweep
// and the wiring checks selectable from the command line.
package selftest

import (
	"context"
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
	"github.com/coreman2200/funtimes-silopad/internal/render"
)

type Kind string

const (
	None       Kind = ""
	Boot       Kind = "boot"
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	TileFill   Kind = "tile_fill"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case None, Boot, IndexSweep, RGBTest, TileFill:
		return k, nil
	}
	return None, fmt.Errorf("selftest: unknown test %q", s)
}

// BootStep is the dwell of each diagonal pad in the startup sweep.
const BootStep = 50 * time.Millisecond

type Plan struct {
	Kind Kind
	// Level scales the test colors, 0 means 0.25.
	Level float64
}

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }
func (r *Runner) Kind() Kind { return r.plan.Kind }

func (r *Runner) level() float64 {
	if r.plan.Level <= 0 {
		return 0.25
	}
	return r.plan.Level
}

// Step fills f with the next pattern; returns false when complete.
func (r *Runner) Step(f *render.Frame) bool {
	*f = render.Frame{}
	n := layout.Size * layout.Size

	switch r.plan.Kind {
	case Boot:
		if r.step >= layout.Size {
			return false
		}
		f[r.step][r.step] = palette.Named(30, palette.Orange)
	case IndexSweep:
		if r.step >= n {
			return false
		}
		c := palette.RGB{R: 255, G: 255, B: 255}.Scale(r.level())
		f[r.step/layout.Size][r.step%layout.Size] = c
	case RGBTest:
		if r.step >= 3 {
			return false
		}
		var c palette.RGB
		switch r.step {
		case 0:
			c.R = 255
		case 1:
			c.G = 255
		case 2:
			c.B = 255
		}
		c = c.Scale(r.level())
		for y := range f {
			for x := range f[y] {
				f[y][x] = c
			}
		}
	case TileFill:
		const tile = layout.Size / 2
		if r.step >= 4 {
			return false
		}
		ox, oy := r.step%2*tile, r.step/2*tile
		c := palette.RGB{G: 255, B: 255}.Scale(r.level()) // cyan
		for y := oy; y < oy+tile; y++ {
			for x := ox; x < ox+tile; x++ {
				f[y][x] = c
			}
		}
	default:
		return false
	}
	r.step++
	return true
}

// Run plays plan on p, one step per interval, and leaves the panel dark.
func Run(ctx context.Context, p panel.Panel, plan Plan, interval time.Duration) error {
	r := NewRunner(plan)
	var f render.Frame
	for r.Step(&f) {
		if err := show(p, &f); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	f = render.Frame{}
	return show(p, &f)
}

func show(p panel.Panel, f *render.Frame) error {
	for y := range f {
		for x := range f[y] {
			p.SetPixel(x, y, f[y][x])
		}
	}
	if err := p.Sync(); err != nil {
		return fmt.Errorf("selftest: %w", err)
	}
	return nil
}
