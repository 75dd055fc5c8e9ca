package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/funtimes-silopad/internal/diagnostics"
	"github.com/coreman2200/funtimes-silopad/internal/emit"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
	"github.com/coreman2200/funtimes-silopad/internal/panel/fake"
	"github.com/coreman2200/funtimes-silopad/internal/render"
	"github.com/coreman2200/funtimes-silopad/internal/session"
)

type harness struct {
	p       *fake.Panel
	core    *Core
	commits []session.Commit
	diags   []diag.Diagnostic
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{p: fake.New(), now: time.Unix(0, 0)}
	core, err := NewCore(h.p, Options{
		Sink: emit.Func(func(c session.Commit) error { h.commits = append(h.commits, c); return nil }),
		Diag: func(d diag.Diagnostic) { h.diags = append(h.diags, d) },
	})
	require.NoError(t, err)
	h.core = core
	return h
}

// tap queues a press and runs ticks for both edges.
func (h *harness) tap(x, y int) {
	h.p.Press(x, y)
	h.tick(time.Millisecond)
	h.tick(time.Millisecond)
}

func (h *harness) tick(d time.Duration) {
	h.now = h.now.Add(d)
	h.core.Tick(h.now)
}

func TestInitialRepaint(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	assert.Equal(t, 64, h.p.Writes)
	assert.Equal(t, 1, h.p.Syncs)

	sc := render.DefaultScheme()
	assert.Equal(t, sc.Color(render.SelectOff), h.p.Pixel(0, 0))
	assert.Equal(t, sc.Color(render.AssignOff), h.p.Pixel(7, 7))

	h.tick(time.Millisecond)
	assert.Equal(t, 64, h.p.Writes, "idle tick does not repaint")
	assert.Equal(t, 2, h.p.Syncs)
}

func TestCommitFlashesThenSettles(t *testing.T) {
	h := newHarness(t)
	sc := render.DefaultScheme()
	h.tap(0, 1) // gridx1, track1
	h.tap(5, 0) // control 1
	h.tap(7, 7) // assign

	require.Len(t, h.commits, 1)
	assert.Equal(t, "gridx 1 1 1", h.commits[0].Prompt())
	require.NotEmpty(t, h.diags)
	assert.Equal(t, "COMMIT", h.diags[len(h.diags)-1].Code)

	assert.Equal(t, sc.Color(render.AssignOn), h.p.Pixel(7, 7))
	assert.Equal(t, sc.Color(render.Assignment), h.p.Pixel(0, 1))

	h.tick(DefaultFlash)
	assert.Equal(t, sc.Color(render.AssignOff), h.p.Pixel(7, 7))
}

func TestRejectedPressShowsError(t *testing.T) {
	h := newHarness(t)
	sc := render.DefaultScheme()
	h.tap(5, 5) // macro 1
	h.tap(0, 1) // controller while a macro is staged

	assert.Equal(t, sc.Color(render.Error), h.p.Pixel(0, 1))
	require.Len(t, h.diags, 1)
	assert.Equal(t, "PRESS.REJECTED", h.diags[0].Code)

	// the next accepted press drops the overlay
	h.tap(5, 0)
	assert.Equal(t, sc.Color(render.Off), h.p.Pixel(0, 1))
}

func TestFallingEdgesAndStrayEventsIgnored(t *testing.T) {
	h := newHarness(t)
	h.p.Push(panel.Event{X: 0, Y: 0, Edge: panel.Falling})
	h.p.Push(panel.Event{X: 9, Y: 0, Edge: panel.Rising})
	h.tick(time.Millisecond)
	h.tick(time.Millisecond)
	assert.Equal(t, session.NewState(h.core.Machine.State.Page), h.core.Machine.State)
}

func TestSyncErrorReported(t *testing.T) {
	h := newHarness(t)
	h.p.SyncErr = errors.New("nack")
	h.tick(time.Millisecond)
	require.Len(t, h.diags, 1)
	assert.Equal(t, "PANEL.SYNC", h.diags[0].Code)
	assert.Equal(t, "nack", h.diags[0].Detail)
}

func TestRunStopsAndDarkens(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.core.Run(ctx), context.Canceled)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.True(t, h.p.Pixel(x, y).IsOff())
		}
	}
}

func TestNilPanel(t *testing.T) {
	_, err := NewCore(nil, Options{})
	assert.Error(t, err)
}

func TestUnknownPageRejected(t *testing.T) {
	c, err := NewCore(fake.New(), Options{Page: "silo"})
	assert.EqualError(t, err, `app: unknown page "silo"`)
	assert.Nil(t, c)
}
