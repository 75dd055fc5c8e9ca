package strip

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-silopad/internal/palette"
)

type drawer struct {
	draws  int
	last   *image.NRGBA
	err    error
	halted bool
}

func (d *drawer) String() string { return "drawer" }
func (d *drawer) Halt() error { d.halted = true; return nil }
func (d *drawer) ColorModel() color.Model { return color.NRGBAModel }
func (d *drawer) Bounds() image.Rectangle { return image.Rect(0, 0, 64, 1) }
func (d *drawer) Draw(_ image.Rectangle, src image.Image, _ image.Point) error {
	d.draws++
	if im, ok := src.(*image.NRGBA); ok {
		d.last = image.NewNRGBA(im.Rect)
		copy(d.last.Pix, im.Pix)
	}
	return d.err
}

func TestSyncMapsSerpentine(t *testing.T) {
	dr := &drawer{}
	d := New(dr, Opts{Serpentine: true, Gain: 10}, false)
	d.SetPixel(0, 1, palette.RGB{R: 5, G: 2})
	d.SetPixel(3, 0, palette.RGB{B: 30})
	require.NoError(t, d.Sync())
	require.Equal(t, 1, dr.draws)

	// row 1 runs right to left, so (0,1) is LED 15
	assert.Equal(t, color.NRGBA{R: 50, G: 20, A: 255}, dr.last.NRGBAAt(15, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, dr.last.NRGBAAt(3, 0))

	require.NoError(t, d.Sync())
	assert.Equal(t, 1, dr.draws, "no change, no draw")
}

func TestSyncDrawError(t *testing.T) {
	dr := &drawer{err: errors.New("bus")}
	d := New(dr, Opts{}, false)
	d.SetPixel(0, 0, palette.RGB{R: 1})
	assert.EqualError(t, d.Sync(), "strip: draw: bus")
}

func TestNoInputsAndClose(t *testing.T) {
	dr := &drawer{}
	d := New(dr, Opts{}, false)
	_, ok := d.Poll()
	assert.False(t, ok)
	require.NoError(t, d.Close())
	assert.True(t, dr.halted)
}

type port struct{ closed int }

func (p *port) Close() error { p.closed++; return nil }

func TestCloseReleasesPort(t *testing.T) {
	dr := &drawer{}
	pt := &port{}
	d := New(dr, Opts{}, true)
	d.port = pt
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.True(t, dr.halted)
	assert.Equal(t, 1, pt.closed)
}
