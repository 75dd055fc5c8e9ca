package trellis

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// Seesaw module base addresses and function registers used by NeoTrellis.
const (
	statusBase  = 0x00
	statusSWRST = 0x7F

	neopixelBase      = 0x0E
	neopixelPin       = 0x01
	neopixelBufLength = 0x03
	neopixelBuf       = 0x04
	neopixelShow      = 0x05

	keypadBase  = 0x10
	keypadEvent = 0x01
	keypadCount = 0x04
	keypadFIFO  = 0x10
)

// seesawEdge is the keypad edge encoding of the seesaw firmware.
type seesawEdge uint8

const (
	edgeHigh    seesawEdge = 0
	edgeLow     seesawEdge = 1
	edgeFalling seesawEdge = 2
	edgeRising  seesawEdge = 3
)

// seesawKey converts a tile key (0..15, row major 4x4) to the seesaw keypad
// number, which is laid out on an 8-wide matrix.
func seesawKey(k int) uint8 { return uint8(k/4*8 + k%4) }

// tileKey is the inverse of seesawKey.
func tileKey(s uint8) int { return int(s)/8*4 + int(s)%8 }

// seesaw is one seesaw chip on the bus.
type seesaw struct {
	dev   *i2c.Dev
	delay time.Duration
}

func (s *seesaw) write(base, reg byte, data ...byte) error {
	w := append([]byte{base, reg}, data...)
	if err := s.dev.Tx(w, nil); err != nil {
		return fmt.Errorf("write %#02x/%#02x: %w", base, reg, err)
	}
	return nil
}

// read selects the register, waits for the chip to prepare the data, then
// reads n bytes in a second transaction.
func (s *seesaw) read(base, reg byte, n int) ([]byte, error) {
	if err := s.dev.Tx([]byte{base, reg}, nil); err != nil {
		return nil, fmt.Errorf("select %#02x/%#02x: %w", base, reg, err)
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	r := make([]byte, n)
	if err := s.dev.Tx(nil, r); err != nil {
		return nil, fmt.Errorf("read %#02x/%#02x: %w", base, reg, err)
	}
	return r, nil
}
