// Package sim is a terminal stand-in for the pad hardware.
package sim

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

// Dev runs a bubbletea program that shows the pads and turns clicks and key
// presses into edge events.
type Dev struct {
	prog   *tea.Program
	events *panel.Queue
	buf    panel.Buffer
	done   chan struct{}
	err    error
}

// New builds the program. gain scales pad colors for display.
func New(gain float64, opts ...tea.ProgramOption) *Dev {
	q := panel.NewQueue(64)
	if opts == nil {
		opts = []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	}
	return &Dev{
		prog:   tea.NewProgram(NewModel(q, gain), opts...),
		events: q,
		done:   make(chan struct{}),
	}
}

// Start runs the program in the background. Done is closed when it exits.
func (d *Dev) Start() {
	go func() {
		_, d.err = d.prog.Run()
		close(d.done)
	}()
}

// Done is closed when the user quits the simulator.
func (d *Dev) Done() <-chan struct{} { return d.done }

// Err is the program's exit error, valid after Done.
func (d *Dev) Err() error { return d.err }

func (d *Dev) Poll() (panel.Event, bool) { return d.events.Poll() }

func (d *Dev) SetPixel(x, y int, c palette.RGB) { d.buf.Set(x, y, c) }

// Sync sends the current image to the program when anything changed.
func (d *Dev) Sync() error {
	if d.buf.Flush(func(int, int, palette.RGB) {}) == 0 {
		return nil
	}
	d.prog.Send(FrameMsg(d.buf.Snapshot()))
	return nil
}

// Status shows msg under the grid.
func (d *Dev) Status(msg string) { d.prog.Send(StatusMsg(msg)) }

func (d *Dev) Close() error {
	d.prog.Quit()
	return nil
}
