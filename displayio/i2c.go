// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package displayio

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// I2C is a Bus over a periph.io I²C bus.
type I2C struct {
	c conn.Conn
}

// NewI2C returns a Bus talking to the controller at addr on b.
//
// Use 0 for addr to select DefaultI2CAddr. Maximum clock speed of the
// SSD1306 is 1/2.5µs = 400KHz.
func NewI2C(b i2c.Bus, addr uint16) (*I2C, error) {
	if b == nil {
		return nil, errors.New("displayio: nil I²C bus")
	}
	if addr == 0 {
		addr = DefaultI2CAddr
	}
	if addr > 0x7f {
		return nil, fmt.Errorf("displayio: invalid I²C address 0x%x", addr)
	}
	return &I2C{c: &i2c.Dev{Bus: b, Addr: addr}}, nil
}

func (i *I2C) String() string {
	return fmt.Sprintf("I2C{%s}", i.c)
}

// WriteCommand implements Bus.
func (i *I2C) WriteCommand(c []byte) error {
	return i.c.Tx(append([]byte{i2cCmd}, c...), nil)
}

// WriteData implements Bus.
func (i *I2C) WriteData(d []byte) error {
	return i.c.Tx(append([]byte{i2cData}, d...), nil)
}

var _ Bus = &I2C{}
