package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/i2c/i2creg"

	"github.com/coreman2200/funtimes-silopad/internal/config"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
	"github.com/coreman2200/funtimes-silopad/internal/panel/launchpad"
	"github.com/coreman2200/funtimes-silopad/internal/panel/sim"
	"github.com/coreman2200/funtimes-silopad/internal/panel/strip"
	"github.com/coreman2200/funtimes-silopad/internal/panel/trellis"
	"github.com/coreman2200/funtimes-silopad/internal/panel/web"
)

// rig is the primary panel teed with its mirrors.
type rig struct {
	name    string
	panel   panel.Panel
	sim     *sim.Dev
	closers []io.Closer
}

func (r *rig) Close() error {
	errs := []error{r.panel.Close()}
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// openPanels builds the configured primary panel, falling back to the
// terminal simulator, then attaches the mirrors.
func openPanels(cfg *config.Config, srv *web.Server) (*rig, error) {
	r := &rig{}
	primary, err := r.open(cfg.Panel, cfg, srv)
	if err != nil {
		log.Warn().Err(err).Str("panel", cfg.Panel).Msg("panel init failed; falling back to SIM")
		if primary, err = r.open("sim", cfg, srv); err != nil {
			return nil, err
		}
		r.name = "sim"
		srv.Driver = "sim"
	} else {
		r.name = cfg.Panel
	}

	var mirrors []panel.Panel
	for _, m := range cfg.Mirrors {
		if m == r.name {
			continue
		}
		p, err := r.open(m, cfg, srv)
		if err != nil {
			log.Warn().Err(err).Str("mirror", m).Msg("mirror disabled")
			continue
		}
		mirrors = append(mirrors, p)
	}
	r.panel = panel.Tee(primary, mirrors...)
	return r, nil
}

func (r *rig) open(name string, cfg *config.Config, srv *web.Server) (panel.Panel, error) {
	switch name {
	case "trellis":
		bus, err := i2creg.Open(cfg.Trellis.Bus)
		if err != nil {
			return nil, fmt.Errorf("trellis: %w", err)
		}
		d, err := trellis.New(bus, &trellis.Opts{
			Addrs:      cfg.Trellis.Addrs,
			ReadDelay:  time.Duration(cfg.Trellis.ReadDelayUs) * time.Microsecond,
			ResetDelay: time.Duration(cfg.Trellis.ResetDelayMs) * time.Millisecond,
		})
		if err != nil {
			bus.Close()
			return nil, err
		}
		r.closers = append(r.closers, bus)
		return d, nil

	case "launchpad":
		return launchpad.Open(launchpad.Opts{
			Port:    cfg.Launchpad.Port,
			Palette: cfg.Launchpad.Palette,
			Channel: cfg.Launchpad.Channel,
		})

	case "sim":
		if r.sim == nil {
			r.sim = sim.New(cfg.SimGain)
		}
		return r.sim, nil

	case "web":
		return srv, nil

	case "strip":
		return strip.Open(strip.Opts{
			Port:       cfg.Strip.Port,
			Serpentine: cfg.Strip.Serpentine,
			Gain:       cfg.Strip.Gain,
			FreqKHz:    cfg.Strip.FreqKHz,
		})
	}
	return nil, fmt.Errorf("unknown panel %q", name)
}
