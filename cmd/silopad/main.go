package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-silopad/internal/app"
	"github.com/coreman2200/funtimes-silopad/internal/config"
	diag "github.com/coreman2200/funtimes-silopad/internal/diagnostics"
	"github.com/coreman2200/funtimes-silopad/internal/emit"
	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/panel/web"
	"github.com/coreman2200/funtimes-silopad/internal/selftest"
)

func main() {
	// ---- Flags (config.yaml provides the rest) ----
	var (
		configPath = flag.String("config", "silopad.yaml", "path to silopad.yaml")
		driver     = flag.String("panel", "", "panel: trellis | launchpad | sim | web (overrides config)")
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		level      = flag.String("log-level", "", "log level (overrides config)")
		logFile    = flag.String("log-file", "silopad.log", "log file used while the terminal simulator is up")
		testName   = flag.String("selftest", "", "run a panel test and exit: boot | index_sweep | rgb_channels | tile_fill")
		noBoot     = flag.Bool("no-boot", false, "skip the startup sweep")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Config ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		cfg = config.Default()
	}
	if *driver != "" {
		cfg.Panel = *driver
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level")
	}
	kind, err := selftest.ParseKind(*testName)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	scheme, err := cfg.SchemeColors()
	if err != nil {
		log.Fatal().Err(err).Msg("bad color scheme")
	}

	if _, err := host.Init(); err != nil {
		log.Warn().Err(err).Msg("periph host init failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- Panels ----
	srv := web.New(cfg.Panel, layout.Page(cfg.Page))
	rig, err := openPanels(cfg, srv)
	if err != nil {
		log.Fatal().Err(err).Msg("no usable panel")
	}
	defer rig.Close()
	if rig.sim != nil {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Logger = log.Output(io.Discard)
		} else {
			defer f.Close()
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.Kitchen})
		}
		rig.sim.Start()
		go func() {
			<-rig.sim.Done()
			cancel()
		}()
	}

	if kind != selftest.None {
		log.Info().Str("test", string(kind)).Msg("running self test")
		if err := selftest.Run(ctx, rig.panel, selftest.Plan{Kind: kind}, 250*time.Millisecond); err != nil {
			log.Error().Err(err).Msg("self test")
		}
		return
	}

	// ---- Commit sinks ----
	sinks := emit.Multi{emit.Log{}}
	if cfg.MIDI.Port != "" {
		m, err := emit.OpenMIDI(cfg.MIDI.Port, cfg.MIDI.Channel, cfg.MIDI.BaseCC)
		if err != nil {
			log.Warn().Err(err).Msg("MIDI out disabled")
		} else {
			sinks = append(sinks, m)
		}
	}
	if cfg.Keys.Device != "" {
		k, closer, err := emit.OpenKeys(cfg.Keys.Device, time.Duration(cfg.Keys.DelayMs)*time.Millisecond)
		if err != nil {
			log.Warn().Err(err).Msg("HID keyboard disabled")
		} else {
			defer closer.Close()
			sinks = append(sinks, k)
		}
	}

	core, err := app.NewCore(rig.panel, app.Options{
		Page:   layout.Page(cfg.Page),
		Scheme: scheme,
		Post:   cfg.Post(),
		Poll:   cfg.Poll(),
		Flash:  cfg.Flash(),
		Sink:   sinks,
		Diag:   func(d diag.Diagnostic) { srv.PushDiag(d) },
	})
	if err != nil {
		log.Fatal().Err(err).Msg("core init")
	}

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	srv.Routes(mux)
	hs := &http.Server{
		Addr:         cfg.Web.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Web.Addr).Str("panel", rig.name).Msg("HTTP server starting")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-ch:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	if !*noBoot {
		if err := selftest.Run(ctx, rig.panel, selftest.Plan{Kind: selftest.Boot}, selftest.BootStep); err != nil {
			log.Warn().Err(err).Msg("boot sweep")
		}
	}
	_ = core.Run(ctx)
	_ = hs.Close()
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
