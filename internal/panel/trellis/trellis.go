// Package trellis drives a 2x2 arrangement of Adafruit NeoTrellis 4x4 tiles
// sharing one I2C bus as a single 8x8 pad grid.
//
// Each tile runs the seesaw firmware: a NeoPixel buffer for the 16 LEDs and a
// keypad FIFO for key edges. Pixels are staged in a per-tile shadow buffer and
// pushed on Sync, which also drains the keypad FIFOs.
package trellis

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"

	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

const (
	tileSize    = 4
	keysPerTile = tileSize * tileSize
	bufLen      = keysPerTile * 3
	// pixel payload per BUF write; seesaw frames are limited to 32 bytes
	chunkLen = 24
	ledPin   = 3
)

// DefaultAddrs is the tile address grid, indexed [row][col].
var DefaultAddrs = [2][2]uint16{
	{0x2E, 0x30},
	{0x31, 0x2F},
}

// Opts is the configuration for the tile grid.
type Opts struct {
	// Addrs holds the I2C address of each tile, indexed [row][col].
	Addrs [2][2]uint16
	// ReadDelay is the pause between selecting a register and reading it.
	ReadDelay time.Duration
	// ResetDelay is the pause after the software reset of a tile.
	ResetDelay time.Duration
}

// DefaultOpts matches the stock wiring.
var DefaultOpts = Opts{
	Addrs:      DefaultAddrs,
	ReadDelay:  500 * time.Microsecond,
	ResetDelay: 500 * time.Millisecond,
}

type tile struct {
	seesaw
	addr     uint16
	col, row int
	buf      [bufLen]byte
	dirty    bool
}

// Dev is the handle for the whole grid.
type Dev struct {
	tiles  []*tile
	events []panel.Event
}

// New resets and configures every tile. opts can be nil to use DefaultOpts.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("trellis: nil bus")
	}
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	d := &Dev{}
	for row := range opts.Addrs {
		for col, addr := range opts.Addrs[row] {
			if addr == 0 {
				return nil, fmt.Errorf("trellis: tile %d,%d has no address", col, row)
			}
			t := &tile{
				seesaw: seesaw{dev: &i2c.Dev{Bus: bus, Addr: addr}, delay: opts.ReadDelay},
				addr:   addr,
				col:    col,
				row:    row,
			}
			if err := t.init(opts.ResetDelay); err != nil {
				return nil, fmt.Errorf("trellis: tile %#02x: %w", addr, err)
			}
			d.tiles = append(d.tiles, t)
		}
	}
	return d, nil
}

func (t *tile) init(resetDelay time.Duration) error {
	if err := t.write(statusBase, statusSWRST, 0xFF); err != nil {
		return err
	}
	if resetDelay > 0 {
		time.Sleep(resetDelay)
	}
	if err := t.write(neopixelBase, neopixelPin, ledPin); err != nil {
		return err
	}
	if err := t.write(neopixelBase, neopixelBufLength, 0, bufLen); err != nil {
		return err
	}
	for k := 0; k < keysPerTile; k++ {
		for _, e := range []seesawEdge{edgeRising, edgeFalling} {
			if err := t.write(keypadBase, keypadEvent, seesawKey(k), 1<<(e+1)|1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dev) tileAt(x, y int) *tile {
	return d.tiles[(y/tileSize)*2+x/tileSize]
}

// SetPixel stages c at grid coordinate (x, y). NeoTrellis LEDs are GRB.
func (d *Dev) SetPixel(x, y int, c palette.RGB) {
	if !panel.InGrid(x, y) {
		panic(fmt.Sprintf("trellis: pixel (%d,%d) out of range", x, y))
	}
	t := d.tileAt(x, y)
	o := ((y%tileSize)*tileSize + x%tileSize) * 3
	px := [3]byte{c.G, c.R, c.B}
	if t.buf[o] == px[0] && t.buf[o+1] == px[1] && t.buf[o+2] == px[2] {
		return
	}
	copy(t.buf[o:o+3], px[:])
	t.dirty = true
}

// Poll pops the oldest key event collected by Sync.
func (d *Dev) Poll() (panel.Event, bool) {
	if len(d.events) == 0 {
		return panel.Event{}, false
	}
	ev := d.events[0]
	d.events = d.events[1:]
	return ev, true
}

// Sync pushes dirty tiles and drains every keypad FIFO.
func (d *Dev) Sync() error {
	var errs []error
	for _, t := range d.tiles {
		if err := t.show(); err != nil {
			errs = append(errs, fmt.Errorf("trellis: tile %#02x: %w", t.addr, err))
		}
	}
	for _, t := range d.tiles {
		evs, err := t.keys()
		if err != nil {
			errs = append(errs, fmt.Errorf("trellis: tile %#02x: %w", t.addr, err))
			continue
		}
		d.events = append(d.events, evs...)
	}
	return errors.Join(errs...)
}

func (t *tile) show() error {
	if !t.dirty {
		return nil
	}
	for off := 0; off < bufLen; off += chunkLen {
		end := off + chunkLen
		if end > bufLen {
			end = bufLen
		}
		data := append([]byte{byte(off >> 8), byte(off)}, t.buf[off:end]...)
		if err := t.write(neopixelBase, neopixelBuf, data...); err != nil {
			return err
		}
	}
	if err := t.write(neopixelBase, neopixelShow); err != nil {
		return err
	}
	t.dirty = false
	return nil
}

// keys reads the keypad FIFO. The firmware may report stale slots as 0xFF,
// which decode to keys outside the tile and are dropped.
func (t *tile) keys() ([]panel.Event, error) {
	cnt, err := t.read(keypadBase, keypadCount, 1)
	if err != nil {
		return nil, err
	}
	if cnt[0] == 0 {
		return nil, nil
	}
	raw, err := t.read(keypadBase, keypadFIFO, int(cnt[0])+2)
	if err != nil {
		return nil, err
	}
	var out []panel.Event
	for _, b := range raw {
		k := tileKey(b >> 2)
		if k >= keysPerTile {
			continue
		}
		var edge panel.Edge
		switch seesawEdge(b & 0x3) {
		case edgeRising:
			edge = panel.Rising
		case edgeFalling:
			edge = panel.Falling
		default:
			continue
		}
		out = append(out, panel.Event{
			X:    t.col*tileSize + k%tileSize,
			Y:    t.row*tileSize + k/tileSize,
			Edge: edge,
		})
	}
	return out, nil
}

// Clear turns every LED off and pushes immediately.
func (d *Dev) Clear() error {
	for _, t := range d.tiles {
		t.buf = [bufLen]byte{}
		t.dirty = true
	}
	var errs []error
	for _, t := range d.tiles {
		if err := t.show(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close blanks the grid. The bus is owned by the caller.
func (d *Dev) Close() error {
	if err := d.Clear(); err != nil {
		return fmt.Errorf("trellis: close: %w", err)
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("trellis.Dev{%d tiles}", len(d.tiles))
}
