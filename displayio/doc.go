// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package displayio is the glue between display controller drivers and the
// bus they are wired to.
//
// A controller driver describes its power-up configuration as an init
// sequence, a flat byte buffer of [command, length, payload...] entries, and
// hands it to New together with the controller constants (color depth,
// column/row addressing commands). The returned Dev sends the sequence,
// keeps a one bit framebuffer and implements display.Drawer.
//
// The transport itself is abstracted by Bus. Adapters are provided for
// periph.io I²C buses, periph.io 4-wire SPI ports and TinyGo drivers.I2C
// buses.
//
// # Init sequence format
//
// Each entry is the command byte, a length byte and the payload. When bit 7
// of the length byte is set, one extra byte follows the payload: the number
// of milliseconds to wait after the command, 255 meaning 500ms.
package displayio
