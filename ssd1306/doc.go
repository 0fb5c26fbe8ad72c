// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306 controls a monochrome OLED display via a SSD1306
// controller.
//
// New patches the controller init sequence for the panel geometry: the mux
// ratio follows the panel height, 16 and 32 rows panels use the sequential
// COM pin configuration, and panels narrower than 128 columns are centered
// in the controller RAM. The 64x48 and 72x40 panels have their own offsets;
// the 72x40 panel also needs the internal current reference enabled.
//
// The device can be driven on either I²C or SPI with 4 wires, see the
// displayio package for the bus adapters.
//
// Some boards expose a RES / Reset pin. If present, it must be normally be
// High. When set to Low (Ground), it enables the reset circuitry. It can be
// used externally to this driver, if used, the driver must be reinstantiated.
//
// # Datasheets
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
//
// https://cdn-shop.adafruit.com/datasheets/UG-2864HSWEG01+user+guide.pdf
package ssd1306
