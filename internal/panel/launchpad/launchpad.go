// Package launchpad uses a Novation Launchpad X in programmer mode as the
// 8x8 pad grid.
package launchpad

import (
	"errors"
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

var sysexHeader = []byte{0x00, 0x20, 0x29, 0x02, 0x0C}

// Opts is the Launchpad configuration.
type Opts struct {
	// Port is matched case-insensitively against MIDI port names.
	Port string
	// Palette lights pads with the velocity palette instead of RGB SysEx.
	Palette bool
	// Channel for palette NoteOn messages (0 = static color).
	Channel uint8
}

// Dev is a Launchpad X handle.
type Dev struct {
	opts   Opts
	send   func(gomidi.Message) error
	stop   func()
	events *panel.Queue
	buf    panel.Buffer
}

// Open finds the Launchpad ports by name and connects to them. A MIDI driver
// must be registered by the caller.
func Open(opts Opts) (*Dev, error) {
	if opts.Port == "" {
		opts.Port = "launchpad"
	}
	out, err := findOut(opts.Port)
	if err != nil {
		return nil, err
	}
	in, err := findIn(opts.Port)
	if err != nil {
		return nil, err
	}
	return New(in, out, opts)
}

// New connects to already opened ports and switches the device into
// programmer mode.
func New(in drivers.In, out drivers.Out, opts Opts) (*Dev, error) {
	if out == nil {
		return nil, errors.New("launchpad: nil output port")
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("launchpad: open output: %w", err)
	}
	d := newDev(send, opts)
	if err := d.programmerMode(); err != nil {
		return nil, err
	}
	if in != nil {
		stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
			d.handle(msg)
		})
		if err != nil {
			return nil, fmt.Errorf("launchpad: open input: %w", err)
		}
		d.stop = stop
	}
	d.buf.Invalidate()
	return d, nil
}

func newDev(send func(gomidi.Message) error, opts Opts) *Dev {
	return &Dev{opts: opts, send: send, events: panel.NewQueue(64)}
}

func (d *Dev) programmerMode() error {
	for _, body := range [][]byte{
		{0x00, 0x7F},       // programmer layout
		{0x08, 0x7F},       // max brightness
		{0x0A, 0x01, 0x01}, // external LED feedback
	} {
		if err := d.send(gomidi.SysEx(append(append([]byte{}, sysexHeader...), body...))); err != nil {
			return fmt.Errorf("launchpad: programmer mode: %w", err)
		}
	}
	return nil
}

// handle converts incoming pad notes into events. Runs on the MIDI driver
// goroutine.
func (d *Dev) handle(msg gomidi.Message) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if x, y, ok := noteToXY(key); ok {
			d.events.Push(panel.Event{X: x, Y: y, Edge: panel.Rising})
		}
	case msg.GetNoteEnd(&ch, &key):
		if x, y, ok := noteToXY(key); ok {
			d.events.Push(panel.Event{X: x, Y: y, Edge: panel.Falling})
		}
	}
}

func (d *Dev) Poll() (panel.Event, bool) { return d.events.Poll() }

func (d *Dev) SetPixel(x, y int, c palette.RGB) { d.buf.Set(x, y, c) }

// Sync sends the pads that changed since the last call.
func (d *Dev) Sync() error {
	if d.opts.Palette {
		var errs []error
		d.buf.Flush(func(x, y int, c palette.RGB) {
			if err := d.send(gomidi.NoteOn(d.opts.Channel, xyToNote(x, y), Nearest(c))); err != nil {
				errs = append(errs, err)
			}
		})
		if err := errors.Join(errs...); err != nil {
			return fmt.Errorf("launchpad: %w", err)
		}
		return nil
	}

	body := append(append([]byte{}, sysexHeader...), 0x03)
	n := d.buf.Flush(func(x, y int, c palette.RGB) {
		body = append(body, 0x03, xyToNote(x, y), c.R>>1, c.G>>1, c.B>>1)
	})
	if n == 0 {
		return nil
	}
	if err := d.send(gomidi.SysEx(body)); err != nil {
		return fmt.Errorf("launchpad: %w", err)
	}
	return nil
}

// Close blanks the pads and stops listening.
func (d *Dev) Close() error {
	for y := 0; y < layout.Size; y++ {
		for x := 0; x < layout.Size; x++ {
			d.buf.Set(x, y, palette.Off)
		}
	}
	err := d.Sync()
	if d.stop != nil {
		d.stop()
	}
	return err
}

// Launchpad X programmer layout: row 1 (bottom) is notes 11-18, row 8 is
// 81-88. Grid y=0 is the top row.
func xyToNote(x, y int) uint8 {
	return uint8((layout.Size-y)*10 + x + 1)
}

func noteToXY(note uint8) (x, y int, ok bool) {
	row := int(note/10) - 1
	col := int(note%10) - 1
	if row < 0 || row >= layout.Size || col < 0 || col >= layout.Size {
		return 0, 0, false
	}
	return col, layout.Size - 1 - row, true
}

func findOut(name string) (drivers.Out, error) {
	for _, p := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(name)) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("launchpad: no output port matching %q", name)
}

func findIn(name string) (drivers.In, error) {
	for _, p := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(name)) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("launchpad: no input port matching %q", name)
}
