// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package oledterm implements a displayio.Bus that emulates a SSD1306
// controller and outputs its panel to terminal (stdout) using ANSI color
// codes.
//
// Useful while you are waiting for your super nice OLED breakout to come by
// mail.
//
// Only the horizontal addressing mode is emulated. Segment and COM remapping
// are ignored, the panel is rendered the way the RAM is laid out.
package oledterm

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/oled/displayio"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Controller RAM is 128 columns by 8 pages of 8 rows.
const (
	ramWidth = 128
	ramPages = 8
)

// Opts represents the options available for this display.
type Opts struct {
	// W receives the rendered frames. Defaults to stdout.
	W io.Writer
	// Width and Height of the panel. Default to 128x64.
	Width  int
	Height int
	// ColStart and RowStart are the position of the panel in the controller
	// RAM.
	ColStart int
	RowStart int
	Palette  *ansi256.Palette

	_ struct{}
}

// Dev is a SSD1306 emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	width   int
	height  int
	col0    int
	row0    int

	ram      [ramPages][ramWidth]byte
	on       bool
	inverted bool
	contrast byte
	// Addressing window and cursor.
	colLo, colHi   int
	pageLo, pageHi int
	col, page      int

	// pending holds a command waiting for its parameters.
	pending []byte
	ops     []byte
	buf     bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// The emulated controller is in its reset state: display off, contrast 0x7F,
// addressing window covering the whole RAM.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:        w,
		palette:  *p,
		width:    opts.Width,
		height:   opts.Height,
		col0:     opts.ColStart,
		row0:     opts.RowStart,
		contrast: 0x7F,
		colHi:    ramWidth - 1,
		pageHi:   ramPages - 1,
	}
	if d.width == 0 {
		d.width = ramWidth
	}
	if d.height == 0 {
		d.height = ramPages * 8
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("oledterm.Dev{%dx%d}", d.width, d.height)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// WriteCommand implements displayio.Bus.
//
// Parameters may be split over multiple calls, as the controller allows.
func (d *Dev) WriteCommand(c []byte) error {
	d.pending = append(d.pending, c...)
	for len(d.pending) != 0 {
		n := 1 + paramCount(d.pending[0])
		if len(d.pending) < n {
			break
		}
		if err := d.exec(d.pending[0], d.pending[1:n]); err != nil {
			d.pending = d.pending[:0]
			return err
		}
		d.pending = d.pending[n:]
	}
	return nil
}

// WriteData implements displayio.Bus.
//
// Bytes are stored at the cursor, which moves right then wraps to the next
// page inside the addressing window.
func (d *Dev) WriteData(b []byte) error {
	for _, v := range b {
		d.ram[d.page][d.col] = v
		if d.col++; d.col > d.colHi {
			d.col = d.colLo
			if d.page++; d.page > d.pageHi {
				d.page = d.pageLo
			}
		}
	}
	return d.refresh()
}

// On returns true when the emulated display is on.
func (d *Dev) On() bool {
	return d.on
}

// Inverted returns true when the display is inverted.
func (d *Dev) Inverted() bool {
	return d.inverted
}

// Contrast returns the current contrast.
func (d *Dev) Contrast() byte {
	return d.contrast
}

// Pixel returns the RAM bit shown at panel position (x, y).
func (d *Dev) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return false
	}
	c := d.col0 + x
	r := d.row0 + y
	if c >= ramWidth || r >= ramPages*8 {
		return false
	}
	return d.ram[r/8][c]&(1<<uint(r%8)) != 0
}

// Commands returns the opcodes received so far, parameters excluded.
func (d *Dev) Commands() []byte {
	return append([]byte(nil), d.ops...)
}

func (d *Dev) exec(op byte, p []byte) error {
	d.ops = append(d.ops, op)
	switch op {
	case 0xAE:
		d.on = false
	case 0xAF:
		d.on = true
	case 0xA6:
		d.inverted = false
	case 0xA7:
		d.inverted = true
	case 0x81:
		d.contrast = p[0]
	case 0x20:
		if p[0]&3 != 0 {
			return fmt.Errorf("oledterm: addressing mode %d is not emulated", p[0]&3)
		}
		return nil
	case 0x21:
		d.colLo, d.colHi = int(p[0]&0x7F), int(p[1]&0x7F)
		d.col = d.colLo
		return nil
	case 0x22:
		d.pageLo, d.pageHi = int(p[0]&7), int(p[1]&7)
		d.page = d.pageLo
		return nil
	default:
		return nil
	}
	return d.refresh()
}

// paramCount returns the number of parameter bytes following op.
func paramCount(op byte) int {
	switch op {
	case 0x20, 0x81, 0x8D, 0xA8, 0xAD, 0xD3, 0xD5, 0xD9, 0xDA, 0xDB:
		return 1
	case 0x21, 0x22, 0xA3:
		return 2
	case 0x29, 0x2A:
		return 5
	case 0x26, 0x27:
		return 6
	default:
		return 0
	}
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[H\033[0m")
	off := color.NRGBA{0, 0, 0, 255}
	// Dimmest contrast is still visible.
	l := byte(0x40 + int(d.contrast)*0xBF/0xFF)
	lit := color.NRGBA{l, l, l, 255}
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			c := off
			if d.on && d.Pixel(x, y) != d.inverted {
				c = lit
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ displayio.Bus = &Dev{}
var _ fmt.Stringer = &Dev{}
