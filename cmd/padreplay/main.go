package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-silopad/internal/app"
	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
	"github.com/coreman2200/funtimes-silopad/internal/panel/fake"
	"github.com/coreman2200/funtimes-silopad/internal/render"
	"github.com/coreman2200/funtimes-silopad/internal/sequence"
)

func main() {
	var (
		scriptPath string
		tickMs     int
		verbose    bool
	)
	flag.StringVar(&scriptPath, "script", "", "Path to a press script (YAML or JSON)")
	flag.IntVar(&tickMs, "tick-ms", 10, "Simulation tick in milliseconds")
	flag.BoolVar(&verbose, "v", false, "Print every panel sync and debug logs")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if scriptPath == "" {
		log.Fatal().Msg("Provide -script path to a press script")
	}
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read script")
	}
	prog, err := sequence.Parse(data)
	if err != nil {
		log.Fatal().Err(err).Msg("parse script")
	}
	if prog.Loop {
		log.Warn().Msg("looping scripts never finish; playing one pass")
		prog.Loop = false
	}

	p := fake.New()
	if verbose {
		p.Out = os.Stdout
	}
	core, err := replay(prog, time.Duration(tickMs)*time.Millisecond, p)
	if err != nil {
		log.Fatal().Err(err).Msg("replay")
	}

	fmt.Println(core.Machine.State.Summary())
	printFrame(os.Stdout, core.Frame())
}

// replay plays prog through a core bound to p until every press has been
// handled and the last overlay has expired.
func replay(prog sequence.Program, dt time.Duration, p *fake.Panel) (*app.Core, error) {
	page := layout.Silos
	if prog.Page != "" {
		page = layout.Page(prog.Page)
	}
	core, err := app.NewCore(p, app.Options{Page: page, Poll: dt})
	if err != nil {
		return nil, err
	}

	player := sequence.NewPlayer(sequence.Hooks{
		Press:   func(x, y int) { p.Push(panel.Event{X: x, Y: y, Edge: panel.Rising}) },
		Release: func(x, y int) { p.Push(panel.Event{X: x, Y: y, Edge: panel.Falling}) },
		Step: func(i int, s sequence.Step) {
			log.Debug().Int("step", i).Ints("press", s.Press[:]).Str("note", s.Note).Msg("step")
		},
	})
	if err := player.Load(prog); err != nil {
		return nil, err
	}
	player.Start()

	now := time.Unix(0, 0)
	for !player.Done() || p.Pending() > 0 {
		player.Tick(dt.Seconds())
		now = now.Add(dt)
		core.Tick(now)
	}
	core.Tick(now.Add(app.DefaultFlash))
	return core, nil
}

// printFrame writes the grid as hex colors, one row per line.
func printFrame(w io.Writer, f render.Frame) {
	for y := range f {
		row := make([]string, len(f[y]))
		for x := range f[y] {
			if f[y][x].IsOff() {
				row[x] = "   .   "
				continue
			}
			row[x] = f[y][x].Hex()
		}
		fmt.Fprintln(w, strings.Join(row, " "))
	}
}
