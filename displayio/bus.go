// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package displayio

// Bus is the transport to a display controller.
//
// Controllers distinguish a command stream from a display RAM stream. How
// this is signaled depends on the wiring: a control byte on I²C, the D/C pin
// on 4-wire SPI.
type Bus interface {
	// WriteCommand sends c as controller commands in one transaction.
	WriteCommand(c []byte) error
	// WriteData sends d to the controller display RAM in one transaction.
	WriteData(d []byte) error
}

// Send writes cmd as a command followed by data as display data.
//
// An empty data is not sent, so Send(b, cmd, nil) is exactly one bus
// transaction.
func Send(b Bus, cmd byte, data []byte) error {
	if err := b.WriteCommand([]byte{cmd}); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return b.WriteData(data)
}

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes

	// DefaultI2CAddr is the usual I²C address of SSD1306 class controllers.
	DefaultI2CAddr uint16 = 0x3c
)
