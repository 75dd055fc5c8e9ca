package emit

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coreman2200/funtimes-silopad/internal/session"
)

// HID usage IDs for the boot keyboard.
const (
	hidA      = 0x04
	hid1      = 0x1E
	hid0      = 0x27
	hidReturn = 0x28
	hidSpace  = 0x2C
)

// DefaultKeyDelay is the pause before each key.
const DefaultKeyDelay = 40 * time.Millisecond

// Keys types control-assignment prompts on a USB HID gadget keyboard
// (e.g. /dev/hidg0), one 8-byte boot report per press and release,
// followed by Return. Other commit kinds have no typed form and are skipped.
type Keys struct {
	W     io.Writer
	Delay time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// OpenKeys opens a HID gadget device for writing.
func OpenKeys(path string, delay time.Duration) (*Keys, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("emit: keys: %w", err)
	}
	return &Keys{W: f, Delay: delay}, f, nil
}

func (k *Keys) Emit(c session.Commit) error {
	if c.Kind != session.AssignControl {
		return nil
	}
	codes, err := usages(c.Prompt())
	if err != nil {
		return err
	}
	for _, u := range append(codes, hidReturn) {
		k.sleep()
		if err := k.report(u); err != nil {
			return err
		}
		if err := k.report(0); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keys) report(usage byte) error {
	if _, err := k.W.Write([]byte{0, 0, usage, 0, 0, 0, 0, 0}); err != nil {
		return fmt.Errorf("emit: keys: %w", err)
	}
	return nil
}

func (k *Keys) sleep() {
	d := k.Delay
	if d == 0 {
		d = DefaultKeyDelay
	}
	if k.Sleep != nil {
		k.Sleep(d)
		return
	}
	time.Sleep(d)
}

// usages maps lowercase letters, digits and space to HID usage IDs.
func usages(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, hidA+byte(r-'a'))
		case r == '0':
			out = append(out, hid0)
		case r >= '1' && r <= '9':
			out = append(out, hid1+byte(r-'1'))
		case r == ' ':
			out = append(out, hidSpace)
		default:
			return nil, fmt.Errorf("emit: keys: no key for %q", r)
		}
	}
	return out, nil
}
