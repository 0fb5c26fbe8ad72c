// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// https://learn.adafruit.com/monochrome-oled-breakouts
//
// https://cdn-shop.adafruit.com/datasheets/UG-2864HSWEG01+user+guide.pdf

import (
	"fmt"

	"github.com/GermanBionicSystems/oled/displayio"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

const (
	_CHARGEPUMP         = 0x8D
	_COLUMNADDR         = 0x21
	_COMSCANDEC         = 0xC8
	_DEACTIVATE_SCROLL  = 0x2E
	_DISPLAYOFF         = 0xAE
	_DISPLAYON          = 0xAF
	_INVERTDISPLAY      = 0xA7
	_IREF_SELECTION     = 0xAD
	_MEMORYMODE         = 0x20
	_NORMALDISPLAY      = 0xA6
	_PAGEADDR           = 0x22
	_SETCOMPINS         = 0xDA
	_SETCONTRAST        = 0x81
	_SETDISPLAYCLOCKDIV = 0xD5
	_SETMULTIPLEX       = 0xA8
	_SETPRECHARGE       = 0xD9
	_SETSEGMENTREMAP    = 0xA1
	_SETSTARTLINE       = 0x40
	_SETVCOMDETECT      = 0xDB
)

// Controller RAM is 128 columns by 64 rows.
const (
	ramWidth  = 128
	ramHeight = 64
)

// initSequence is the power-up configuration. See page 19 of the
// UG-2864HSWEG01 user guide.
var initSequence = displayio.Encode(
	displayio.Command{Op: _DISPLAYOFF},
	displayio.Command{Op: _MEMORYMODE, Payload: []byte{0x00}}, // Horizontal addressing mode
	displayio.Command{Op: _SETCONTRAST, Payload: []byte{0xCF}},
	displayio.Command{Op: _SETSEGMENTREMAP}, // Column 127 is segment 0
	displayio.Command{Op: _NORMALDISPLAY},
	displayio.Command{Op: _COMSCANDEC},                          // Scan from COM[N-1] to COM0
	displayio.Command{Op: _SETMULTIPLEX, Payload: []byte{0x3F}}, // Mux ratio is 1/64
	displayio.Command{Op: _SETDISPLAYCLOCKDIV, Payload: []byte{0x80}},
	displayio.Command{Op: _SETPRECHARGE, Payload: []byte{0xF1}},
	displayio.Command{Op: _SETCOMPINS, Payload: []byte{0x12}}, // Alternative COM pin configuration
	displayio.Command{Op: _SETVCOMDETECT, Payload: []byte{0x40}},
	displayio.Command{Op: _CHARGEPUMP, Payload: []byte{0x14}}, // Enable charge pump
	displayio.Command{Op: _DISPLAYON},
)

// Offsets of the patched payload bytes in initSequence.
var (
	muxOffset = payloadOffset(_SETMULTIPLEX)
	comOffset = payloadOffset(_SETCOMPINS)
)

func payloadOffset(op byte) int {
	off, err := displayio.PayloadOffset(initSequence, op)
	if err != nil {
		panic(err)
	}
	return off
}

// Sequential COM pin configuration, needed by 16 and 32 rows panels.
const comSequential = 0x02

// iref selects the internal current reference, needed by the 0.42" 72x40
// panels (SSD1306B application note).
var iref = displayio.Encode(displayio.Command{Op: _IREF_SELECTION, Payload: []byte{0x30}})

// FrameRate determines scrolling speed.
type FrameRate byte

// Possible frame rates. The value determines the number of refreshes between
// movement. The lower value, the higher speed.
const (
	FrameRate2   FrameRate = 7
	FrameRate3   FrameRate = 4
	FrameRate4   FrameRate = 5
	FrameRate5   FrameRate = 0
	FrameRate25  FrameRate = 6
	FrameRate64  FrameRate = 1
	FrameRate128 FrameRate = 2
	FrameRate256 FrameRate = 3
)

// Orientation is used for scrolling.
type Orientation byte

// Possible orientations for scrolling.
const (
	Left    Orientation = 0x27
	Right   Orientation = 0x26
	UpRight Orientation = 0x29
	UpLeft  Orientation = 0x2A
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W:    128,
	H:    64,
	Addr: displayio.DefaultI2CAddr,
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the panel dimensions as seen after rotation. Both are
	// required.
	W int
	H int
	// Rotation of the display in degrees clockwise. Must be one of 0, 90, 180
	// or 270.
	Rotation int
	// The I²C address of the display. Only used by NewI2C.
	Addr uint16
}

// NewI2C returns a Dev object that communicates over I²C to a SSD1306 display
// controller.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	bus, err := displayio.NewI2C(b, opts.Addr)
	if err != nil {
		return nil, err
	}
	return New(bus, opts)
}

// NewSPI returns a Dev object that communicates over 4-wire SPI to a SSD1306
// display controller.
//
// # Wiring
//
// Connect SDA to SPI_MOSI, SCK to SPI_CLK, CS to SPI_CS and D/C to dc.
//
// rst is optional. When given, the controller is reset before being
// initialized.
func NewSPI(p spi.Port, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	bus, err := displayio.NewFourWire(p, dc, rst)
	if err != nil {
		return nil, err
	}
	if err := bus.Reset(); err != nil {
		return nil, err
	}
	return New(bus, opts)
}

// Dev is an open handle to the display controller.
type Dev struct {
	*displayio.Dev
	awake bool
}

// New configures the controller on b and returns a Dev.
//
// The display is on when New returns.
func New(b displayio.Bus, opts *Opts) (*Dev, error) {
	seq, colStart, rowStart, err := InitSequence(opts)
	if err != nil {
		return nil, err
	}
	d, err := displayio.New(b, seq, &displayio.Config{
		Width:             opts.W,
		Height:            opts.H,
		Rotation:          opts.Rotation,
		ColStart:          colStart,
		RowStart:          rowStart,
		ColorDepth:        1,
		Grayscale:         true,
		SetColumnCommand:  _COLUMNADDR,
		SetRowCommand:     _PAGEADDR,
		BrightnessCommand: _SETCONTRAST,
		DataAsCommands:    true,
		SingleByteBounds:  true,
	})
	if err != nil {
		return nil, err
	}
	return &Dev{Dev: d, awake: true}, nil
}

// InitSequence returns the init sequence for the panel described by opts,
// along with the column and row offsets of the panel in the controller RAM.
//
// Panels narrower than 128 columns are centered in the controller RAM.
func InitSequence(opts *Opts) (seq []byte, colStart, rowStart int, err error) {
	if opts.W <= 0 {
		return nil, 0, 0, fmt.Errorf("ssd1306: invalid width %d", opts.W)
	}
	if opts.H <= 0 {
		return nil, 0, 0, fmt.Errorf("ssd1306: invalid height %d", opts.H)
	}
	switch opts.Rotation {
	case 0, 90, 180, 270:
	default:
		return nil, 0, 0, fmt.Errorf("ssd1306: invalid rotation %d", opts.Rotation)
	}
	w, h := opts.W, opts.H
	if opts.Rotation%180 != 0 {
		w, h = h, w
	}
	if w > ramWidth || h > ramHeight {
		return nil, 0, 0, fmt.Errorf("ssd1306: panel %dx%d does not fit in %dx%d", w, h, ramWidth, ramHeight)
	}

	seq = append([]byte(nil), initSequence...)
	seq[muxOffset] = byte(h - 1)
	if w == 64 && h == 32 {
		// These panels use all 64 rows.
		seq[muxOffset] = byte(ramHeight - 1)
	}
	if (h == 16 || h == 32) && w != 64 {
		seq[comOffset] = comSequential
	}

	if w != ramWidth {
		colStart = (ramWidth - w) / 2
	}
	rowStart = colStart
	switch {
	case w == 64 && h == 48:
		rowStart = 0
	case w == 72 && h == 40:
		colStart, rowStart = 28, 0
		// Before the final display on.
		last := len(seq) - 2
		tail := append(append([]byte(nil), iref...), seq[last:]...)
		seq = append(seq[:last], tail...)
	}
	return seq, colStart, rowStart, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("SSD1306.Dev{%v, %s}", d.Bus(), d.Bounds().Max)
}

// IsAwake returns true if the display is active, false if in sleep mode.
func (d *Dev) IsAwake() bool {
	return d.awake
}

// Sleep puts the display into sleep mode.
//
// The display uses < 10µA in sleep mode. It remembers its RAM content and
// operation mode; the RAM can still be updated while sleeping.
func (d *Dev) Sleep() error {
	if !d.awake {
		return nil
	}
	if err := displayio.Send(d.Bus(), _DISPLAYOFF, nil); err != nil {
		return err
	}
	d.awake = false
	return nil
}

// Wake wakes the display from sleep mode.
func (d *Dev) Wake() error {
	if d.awake {
		return nil
	}
	if err := displayio.Send(d.Bus(), _DISPLAYON, nil); err != nil {
		return err
	}
	d.awake = true
	return nil
}

// Halt implements conn.Resource.
//
// It puts the display into sleep mode.
func (d *Dev) Halt() error {
	return d.Sleep()
}

// Scroll scrolls an horizontal band.
//
// Only one scrolling operation can happen at a time.
//
// Lines are rows of the panel in the controller orientation, before
// rotation. Both startLine and endLine must be multiples of 8.
//
// Use -1 for endLine to extend to the bottom of the display.
func (d *Dev) Scroll(o Orientation, rate FrameRate, startLine, endLine int) error {
	h := d.NativeBounds().Dy()
	if endLine == -1 {
		endLine = (h + 7) &^ 7
	}
	if startLine >= endLine {
		return fmt.Errorf("ssd1306: startLine (%d) must be lower than endLine (%d)", startLine, endLine)
	}
	if startLine&7 != 0 || startLine < 0 || startLine >= h {
		return fmt.Errorf("ssd1306: invalid startLine %d", startLine)
	}
	if endLine&7 != 0 || endLine < 0 || endLine > (h+7)&^7 {
		return fmt.Errorf("ssd1306: invalid endLine %d", endLine)
	}

	// Pages are counted from the top of the controller RAM.
	startLine += d.Offset().Y
	endLine += d.Offset().Y
	startPage := uint8(startLine / 8)
	endPage := uint8(endLine / 8)
	if o == Left || o == Right {
		// page 28
		// <op>, dummy, <start page>, <rate>,  <end page>, <dummy>, <dummy>, <ENABLE>
		return d.Bus().WriteCommand([]byte{byte(o), 0x00, startPage, byte(rate), endPage - 1, 0x00, 0xFF, 0x2F})
	}
	// page 29
	// <op>, dummy, <start page>, <rate>,  <end page>, <offset>, <ENABLE>
	return d.Bus().WriteCommand([]byte{byte(o), 0x00, startPage, byte(rate), endPage - 1, 0x01, 0x2F})
}

// StopScroll stops any scrolling previously set.
//
// The RAM content must be redrawn afterward.
func (d *Dev) StopScroll() error {
	return d.Bus().WriteCommand([]byte{_DEACTIVATE_SCROLL})
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	return d.Bus().WriteCommand([]byte{_SETCONTRAST, level})
}

// SetDisplayStartLine causes the display to start from startLine, effectively
// scrolling the screen to that position.
//
// startLine must be between 0 and 63.
func (d *Dev) SetDisplayStartLine(startLine byte) error {
	if startLine > ramHeight-1 {
		return fmt.Errorf("ssd1306: invalid startLine %d", startLine)
	}
	return d.Bus().WriteCommand([]byte{_SETSTARTLINE | startLine})
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	b := []byte{_NORMALDISPLAY}
	if blackOnWhite {
		b[0] = _INVERTDISPLAY
	}
	return d.Bus().WriteCommand(b)
}

var _ display.Drawer = &Dev{}
