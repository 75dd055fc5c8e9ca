package render

import (
	"errors"
	"time"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/session"
)

// Driver abstracts the pixel sink (a panel).
type Driver interface {
	SetPixel(x, y int, c palette.RGB)
}

// Engine repaints the whole grid from session state, applies post-processing,
// then writes every pixel to the driver.
type Engine struct {
	Drv    Driver
	Scheme Scheme
	Post   PostPipeline

	// Out is the last frame written.
	Out Frame

	Count uint64
	Last  struct {
		RenderMS float64
	}
}

// PostPipeline groups post stages; all are optional.
type PostPipeline struct {
	Brightness float64 // 0..1, 0 or >=1 disables
	WhiteCap   float64 // 0..1 fraction of full white per pixel
}

// NewEngine returns an Engine with defaults wired.
func NewEngine(drv Driver, sc Scheme, post PostPipeline) (*Engine, error) {
	if drv == nil {
		return nil, errors.New("render: nil driver")
	}
	if sc == nil {
		sc = DefaultScheme()
	}
	return &Engine{Drv: drv, Scheme: sc, Post: post}, nil
}

// Compose builds the frame for s without touching the driver.
func (e *Engine) Compose(s *session.State, flash *Flash) Frame {
	var f Frame
	g := layout.Enumerate(s.Page)
	for y := 0; y < layout.Size; y++ {
		for x := 0; x < layout.Size; x++ {
			f[y][x] = e.Scheme.Color(RoleFor(g[y][x], s))
		}
	}
	if flash != nil {
		f[flash.Y][flash.X] = e.Scheme.Color(flash.Role)
	}
	return f
}

// Repaint composes and writes all 64 pixels.
func (e *Engine) Repaint(s *session.State, flash *Flash) Frame {
	start := time.Now()
	f := e.Compose(s, flash)
	e.Post.Apply(&f)
	e.Draw(f)
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0
	return f
}

// Draw writes a prepared frame as is.
func (e *Engine) Draw(f Frame) {
	for y := 0; y < layout.Size; y++ {
		for x := 0; x < layout.Size; x++ {
			e.Drv.SetPixel(x, y, f[y][x])
		}
	}
	e.Out = f
	e.Count++
}

// Clear writes an all-off frame.
func (e *Engine) Clear() { e.Draw(Frame{}) }
