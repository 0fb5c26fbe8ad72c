// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package displayio

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// FourWire is a Bus over a 4-wire SPI port: MOSI, CLK, CS and D/C.
type FourWire struct {
	c   spi.Conn
	dc  gpio.PinOut
	rst gpio.PinOut
}

// NewFourWire returns a Bus over SPI port p.
//
// dc is the data/command select pin and is required; 3-wire SPI with 9 bits
// words is not supported. rst is the optional reset pin, use nil when it is
// not wired or driven elsewhere.
//
// The SSD1306 can operate at up to 3.3Mhz, which is much higher than I²C.
func NewFourWire(p spi.Port, dc, rst gpio.PinOut) (*FourWire, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("displayio: 3-wire SPI mode is not supported, a D/C pin is required")
	}
	if rst == gpio.INVALID {
		return nil, errors.New("displayio: use nil for rst when not wired, do not use gpio.INVALID")
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	if rst != nil {
		if err := rst.Out(gpio.High); err != nil {
			return nil, err
		}
	}
	c, err := p.Connect(3300*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return &FourWire{c: c, dc: dc, rst: rst}, nil
}

func (f *FourWire) String() string {
	return fmt.Sprintf("FourWire{%s, %s}", f.c, f.dc)
}

// Reset pulses the reset pin. It is a no-op when no reset pin was given.
//
// The controller loses its configuration, the display driver must be
// reinstantiated afterward.
func (f *FourWire) Reset() error {
	if f.rst == nil {
		return nil
	}
	if err := f.rst.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	if err := f.rst.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	return nil
}

// WriteCommand implements Bus.
func (f *FourWire) WriteCommand(c []byte) error {
	if err := f.dc.Out(gpio.Low); err != nil {
		return err
	}
	return f.c.Tx(c, nil)
}

// WriteData implements Bus.
func (f *FourWire) WriteData(d []byte) error {
	if err := f.dc.Out(gpio.High); err != nil {
		return err
	}
	return f.c.Tx(d, nil)
}

var _ Bus = &FourWire{}
