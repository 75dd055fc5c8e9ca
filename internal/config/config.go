package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/render"
)

type PowerCfg struct {
	Brightness float64 `yaml:"brightness"`
	WhiteCap   float64 `yaml:"white_cap"`
}

type Trellis struct {
	Bus          string       `yaml:"bus"` // i2creg name, "" for the first bus
	Addrs        [2][2]uint16 `yaml:"addrs"`
	ReadDelayUs  int          `yaml:"read_delay_us"`
	ResetDelayMs int          `yaml:"reset_delay_ms"`
}

type Launchpad struct {
	Port    string `yaml:"port"`
	Palette bool   `yaml:"palette"`
	Channel uint8  `yaml:"channel"`
}

type Strip struct {
	Port       string  `yaml:"port"` // spireg name
	Serpentine bool    `yaml:"serpentine"`
	Gain       float64 `yaml:"gain"`
	FreqKHz    int64   `yaml:"freq_khz"`
}

type Web struct {
	Addr string `yaml:"addr"`
}

type MIDIOut struct {
	Port    string `yaml:"port"`
	Channel uint8  `yaml:"channel"`
	BaseCC  uint8  `yaml:"base_cc"`
}

type Keys struct {
	Device  string `yaml:"device"` // e.g. /dev/hidg0
	DelayMs int    `yaml:"delay_ms"`
}

// Shade overrides one scheme role, e.g. {level: 40, hue: o}.
type Shade struct {
	Level float64 `yaml:"level"`
	Hue   string  `yaml:"hue"`
}

type Config struct {
	Panel   string   `yaml:"panel"`   // trellis | launchpad | sim | web
	Mirrors []string `yaml:"mirrors,omitempty"` // any of sim | web | strip
	Page    string   `yaml:"page"`

	PollMs   int     `yaml:"poll_ms"`
	FlashMs  int     `yaml:"flash_ms"`
	SimGain  float64 `yaml:"sim_gain"`
	LogLevel string  `yaml:"log_level"`

	Power     PowerCfg         `yaml:"power"`
	Trellis   Trellis          `yaml:"trellis"`
	Launchpad Launchpad        `yaml:"launchpad"`
	Strip     Strip            `yaml:"strip,omitempty"`
	Web       Web              `yaml:"web"`
	MIDI      MIDIOut          `yaml:"midi,omitempty"`
	Keys      Keys             `yaml:"keys,omitempty"`
	Scheme    map[string]Shade `yaml:"scheme,omitempty"`
}

func Default() *Config {
	return &Config{
		Panel:    "trellis",
		Page:     "silos",
		PollMs:   10,
		FlashMs:  150,
		SimGain:  6,
		LogLevel: "info",
		Power:    PowerCfg{Brightness: 1, WhiteCap: 0.85},
		Trellis: Trellis{
			Addrs:        [2][2]uint16{{0x2E, 0x30}, {0x31, 0x2F}},
			ReadDelayUs:  500,
			ResetDelayMs: 500,
		},
		Launchpad: Launchpad{Port: "launchpad x"},
		Strip:     Strip{Serpentine: true, Gain: 4, FreqKHz: 2500},
		Web:       Web{Addr: ":8080"},
		MIDI:      MIDIOut{BaseCC: 20},
		Keys:      Keys{DelayMs: 40},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) Poll() time.Duration { return time.Duration(c.PollMs) * time.Millisecond }
func (c *Config) Flash() time.Duration { return time.Duration(c.FlashMs) * time.Millisecond }

// SchemeColors converts the overrides into a render scheme.
func (c *Config) SchemeColors() (render.Scheme, error) {
	over := make(map[render.Role]render.Shade, len(c.Scheme))
	for role, sh := range c.Scheme {
		h, err := palette.ParseHue(sh.Hue)
		if err != nil {
			return nil, fmt.Errorf("config: scheme %s: %w", role, err)
		}
		over[render.Role(role)] = render.Shade{Level: sh.Level, Hue: h}
	}
	return render.NewScheme(over)
}

// Post is the brightness and white cap stage.
func (c *Config) Post() render.PostPipeline {
	return render.PostPipeline{Brightness: c.Power.Brightness, WhiteCap: c.Power.WhiteCap}
}
