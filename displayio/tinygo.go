// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package displayio

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// TinyGoI2C is a Bus over a TinyGo drivers.I2C bus, for boards where the
// machine package provides the I²C peripheral.
type TinyGoI2C struct {
	b    drivers.I2C
	addr uint16
}

// NewTinyGoI2C returns a Bus talking to the controller at addr on b.
//
// Use 0 for addr to select DefaultI2CAddr.
func NewTinyGoI2C(b drivers.I2C, addr uint16) *TinyGoI2C {
	if addr == 0 {
		addr = DefaultI2CAddr
	}
	return &TinyGoI2C{b: b, addr: addr}
}

func (t *TinyGoI2C) String() string {
	return fmt.Sprintf("TinyGoI2C{0x%x}", t.addr)
}

// WriteCommand implements Bus.
func (t *TinyGoI2C) WriteCommand(c []byte) error {
	return t.b.Tx(t.addr, append([]byte{i2cCmd}, c...), nil)
}

// WriteData implements Bus.
func (t *TinyGoI2C) WriteData(d []byte) error {
	return t.b.Tx(t.addr, append([]byte{i2cData}, d...), nil)
}

var _ Bus = &TinyGoI2C{}
