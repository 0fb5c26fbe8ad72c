// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package oled is a container for monochrome OLED display drivers.
//
// ssd1306 is the controller driver, displayio provides the bus adapters and
// the init sequence handling it builds upon, and oledterm emulates a
// controller on the terminal.
package oled
