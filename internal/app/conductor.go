package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/funtimes-silopad/internal/diagnostics"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
	"github.com/coreman2200/funtimes-silopad/internal/render"
)

// Run ticks the loop until ctx is done, then darkens the panel.
func (c *Core) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.Eng.Clear()
			if err := c.Panel.Sync(); err != nil {
				log.Warn().Err(err).Msg("final sync")
			}
			return ctx.Err()
		case now := <-ticker.C:
			c.Tick(now)
		}
	}
}

// Tick handles at most one input event, repaints when needed and syncs
// the panel.
func (c *Core) Tick(now time.Time) {
	if ev, ok := c.Panel.Poll(); ok {
		c.handle(ev, now)
	}
	if c.flash != nil && !now.Before(c.flashUntil) {
		c.flash = nil
		c.dirty = true
	}
	if c.dirty {
		c.Eng.Repaint(c.Machine.State, c.flash)
		c.dirty = false
	}
	if err := c.Panel.Sync(); err != nil {
		log.Warn().Err(err).Msg("panel sync")
		c.diag(diag.SyncFailed(err))
	}
}

func (c *Core) handle(ev panel.Event, now time.Time) {
	if ev.Edge != panel.Rising {
		return
	}
	if !panel.InGrid(ev.X, ev.Y) {
		log.Warn().Int("x", ev.X).Int("y", ev.Y).Msg("event outside the grid")
		return
	}
	out := c.Machine.Press(ev.X, ev.Y)
	c.flash = render.FlashFor(out)
	if c.flash != nil {
		c.flashUntil = now.Add(c.hold)
	}
	c.dirty = true
}

// Frame is the last frame written to the panel.
func (c *Core) Frame() render.Frame { return c.Eng.Out }
