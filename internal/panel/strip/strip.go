// Package strip mirrors the pad grid onto a chained WS281x strip or matrix
// driven over SPI. It has no inputs.
package strip

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

type Opts struct {
	// Port is the spireg name; "" picks the first port.
	Port       string
	Serpentine bool
	// Gain scales pad levels up for the brighter strip LEDs.
	Gain    float64
	FreqKHz int64
}

type Dev struct {
	drawer display.Drawer
	strip  layout.Strip
	gain   float64
	buf    panel.Buffer
	img    *image.NRGBA
	port   io.Closer
	// SPI is false when the console fallback is in use.
	SPI bool
}

// Open finds the SPI port and binds an nrzled driver to it. Without a port
// the strip prints to the console instead.
func Open(opts Opts) (*Dev, error) {
	st := layout.Strip{Width: layout.Size, Height: layout.Size, Serpentine: opts.Serpentine}
	port, err := spireg.Open(opts.Port)
	if err != nil {
		log.Warn().Err(err).Msg("no SPI port, strip prints to the console")
		return New(screen.New(st.Count()), opts, false), nil
	}
	freq := opts.FreqKHz
	if freq <= 0 {
		freq = 2500
	}
	d, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: st.Count(),
		Channels:  3,
		Freq:      physic.Frequency(freq) * physic.KiloHertz,
	})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("strip: %w", err)
	}
	d.Halt()
	dev := New(d, opts, true)
	dev.port = port
	return dev, nil
}

// New wraps an existing drawer.
func New(d display.Drawer, opts Opts, spi bool) *Dev {
	st := layout.Strip{Width: layout.Size, Height: layout.Size, Serpentine: opts.Serpentine}
	g := opts.Gain
	if g <= 0 {
		g = 1
	}
	return &Dev{
		drawer: d,
		strip:  st,
		gain:   g,
		img:    image.NewNRGBA(image.Rect(0, 0, st.Count(), 1)),
		SPI:    spi,
	}
}

func (d *Dev) Poll() (panel.Event, bool) { return panel.Event{}, false }

func (d *Dev) SetPixel(x, y int, c palette.RGB) { d.buf.Set(x, y, c) }

// Sync redraws the whole strip when any pad changed.
func (d *Dev) Sync() error {
	n := d.buf.Flush(func(x, y int, c palette.RGB) {
		c = c.Gain(d.gain)
		d.img.SetNRGBA(d.strip.Index(x, y), 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	})
	if n == 0 {
		return nil
	}
	if err := d.drawer.Draw(d.drawer.Bounds(), d.img, image.Point{}); err != nil {
		return fmt.Errorf("strip: draw: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the SPI port.
func (d *Dev) Close() error {
	err := d.drawer.Halt()
	if d.port != nil {
		err = errors.Join(err, d.port.Close())
		d.port = nil
	}
	return err
}

func (d *Dev) String() string { return fmt.Sprintf("strip.Dev{%s}", d.drawer) }
