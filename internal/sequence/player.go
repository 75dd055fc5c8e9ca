package sequence

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

// Parse reads a YAML or JSON script.
func Parse(data []byte) (Program, error) {
	var prog Program
	if err := yaml.Unmarshal(data, &prog); err != nil {
		return Program{}, fmt.Errorf("sequence: %w", err)
	}
	return prog, nil
}

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{State: Idle, hooks: h}
}

// Load replaces the current program. Resets time and state to Idle.
func (p *Player) Load(prog Program) error {
	if len(prog.Steps) == 0 {
		return errors.New("sequence: program has no steps")
	}
	for i, s := range prog.Steps {
		if !panel.InGrid(s.Press[0], s.Press[1]) {
			return fmt.Errorf("sequence: step %d: press %v outside the grid", i, s.Press)
		}
		if s.WaitMs < 0 || s.HoldMs < 0 {
			return fmt.Errorf("sequence: step %d: negative delay", i)
		}
	}
	p.prog = prog
	p.Stop()
	return nil
}

// Start moves to Running.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Steps) == 0 {
		return
	}
	p.State = Running
}

// Pause pauses playback.
func (p *Player) Pause() { p.State = Paused }

// Resume resumes playback.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop releases held pads and rewinds.
func (p *Player) Stop() {
	p.releaseAll()
	p.State = Idle
	p.rewind()
}

func (p *Player) rewind() {
	p.nowS = 0
	p.idx = 0
	if len(p.prog.Steps) > 0 {
		p.next = ms(p.prog.Steps[0].WaitMs)
	}
}

// Done reports that the program ended and nothing is held.
func (p *Player) Done() bool { return p.State == Idle && len(p.held) == 0 }

// Tick advances the player by dt seconds and fires due presses and
// releases.
func (p *Player) Tick(dt float64) {
	if p.State != Running || dt <= 0 {
		return
	}
	p.nowS += dt
	p.fireReleases(false)

	for p.idx < len(p.prog.Steps) && p.nowS >= p.next {
		s := p.prog.Steps[p.idx]
		if p.hooks.Step != nil {
			p.hooks.Step(p.idx, s)
		}
		if p.hooks.Press != nil {
			p.hooks.Press(s.Press[0], s.Press[1])
		}
		p.held = append(p.held, release{at: p.next + ms(s.HoldMs), x: s.Press[0], y: s.Press[1]})
		p.idx++
		if p.idx < len(p.prog.Steps) {
			p.next += ms(p.prog.Steps[p.idx].WaitMs)
		}
	}
	p.fireReleases(false)

	if p.idx >= len(p.prog.Steps) && len(p.held) == 0 {
		if p.prog.Loop {
			p.rewind()
			return
		}
		p.State = Idle
	}
}

func (p *Player) fireReleases(all bool) {
	kept := p.held[:0]
	for _, r := range p.held {
		if all || p.nowS >= r.at {
			if p.hooks.Release != nil {
				p.hooks.Release(r.x, r.y)
			}
			continue
		}
		kept = append(kept, r)
	}
	p.held = kept
}

func (p *Player) releaseAll() { p.fireReleases(true) }

func ms(v int) float64 { return float64(v) / 1000 }
