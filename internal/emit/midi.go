package emit

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/coreman2200/funtimes-silopad/internal/session"
)

// DefaultBaseCC is the first controller number used by MIDI.
const DefaultBaseCC = 20

// MIDI sends commits as control changes:
//
//	assign control    CC base+slot       value control
//	macro control     CC base+6+macro    value target+1
//	macro clear       CC base+6+macro    value 0
//	random control    CC base+10         value control
type MIDI struct {
	Send    func(gomidi.Message) error
	Channel uint8
	Base    uint8
}

// OpenMIDI opens the first output port whose name contains port.
func OpenMIDI(port string, channel, base uint8) (*MIDI, error) {
	for _, p := range gomidi.GetOutPorts() {
		if !strings.Contains(strings.ToLower(p.String()), strings.ToLower(port)) {
			continue
		}
		send, err := gomidi.SendTo(p)
		if err != nil {
			return nil, fmt.Errorf("emit: midi: %w", err)
		}
		return &MIDI{Send: send, Channel: channel, Base: base}, nil
	}
	return nil, fmt.Errorf("emit: midi: no output port matching %q", port)
}

func (m *MIDI) Emit(c session.Commit) error {
	cc, val, ok := m.control(c)
	if !ok {
		return nil
	}
	if err := m.Send(gomidi.ControlChange(m.Channel, cc, val)); err != nil {
		return fmt.Errorf("emit: midi: %w", err)
	}
	return nil
}

func (m *MIDI) control(c session.Commit) (cc, val uint8, ok bool) {
	switch c.Kind {
	case session.AssignControl:
		return m.Base + uint8(c.Controller.Slot()), uint8(c.Control), true
	case session.MacroControl:
		return m.Base + 6 + uint8(c.Macro), uint8(c.Target) + 1, true
	case session.ClearMacro:
		return m.Base + 6 + uint8(c.Macro), 0, true
	case session.RandomControl:
		return m.Base + 10, uint8(c.Control), true
	}
	return 0, 0, false
}
