// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package displayio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/drivers"
)

// Config are the controller constants and the panel geometry handed to New.
type Config struct {
	// Width and Height are the logical dimensions, as seen after rotation.
	Width  int
	Height int
	// Rotation in degrees clockwise; one of 0, 90, 180 or 270.
	Rotation int
	// ColStart and RowStart are the offsets of the panel inside the
	// controller RAM. RowStart must be a multiple of 8.
	ColStart int
	RowStart int

	// ColorDepth in bits per pixel. Only 1 is supported.
	ColorDepth int
	Grayscale  bool
	// PixelsInByteShareRow is true when the pixels of one RAM byte are
	// horizontal. SSD1306 class controllers pack 8 vertical pixels per byte.
	PixelsInByteShareRow bool

	SetColumnCommand  byte
	SetRowCommand     byte
	BrightnessCommand byte
	// DataAsCommands sends command payloads on the command stream instead of
	// the data stream.
	DataAsCommands bool
	// SingleByteBounds encodes column and row bounds as one byte each.
	SingleByteBounds bool
}

// Dev is an open handle to a display controller configured by an init
// sequence.
type Dev struct {
	bus    Bus
	cfg    Config
	rect   image.Rectangle
	native image.Rectangle
	// buffer is in the controller orientation: horizontal bands of 8 pixels
	// high, one byte per column.
	buffer *image1bit.VerticalLSB
}

// New sends init to the controller over b and returns a Dev.
//
// init is decoded before anything is sent; a malformed sequence is reported
// without bus traffic.
func New(b Bus, init []byte, cfg *Config) (*Dev, error) {
	if b == nil {
		return nil, errors.New("displayio: nil bus")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("displayio: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Rotation%90 != 0 || cfg.Rotation < 0 || cfg.Rotation >= 360 {
		return nil, fmt.Errorf("displayio: invalid rotation %d", cfg.Rotation)
	}
	if cfg.ColorDepth != 1 || cfg.PixelsInByteShareRow {
		return nil, fmt.Errorf("displayio: unsupported color depth %d (pixels in byte share row: %t)", cfg.ColorDepth, cfg.PixelsInByteShareRow)
	}
	if cfg.ColStart < 0 || cfg.RowStart < 0 {
		return nil, fmt.Errorf("displayio: invalid start offset %d,%d", cfg.ColStart, cfg.RowStart)
	}
	if cfg.RowStart%8 != 0 {
		// Rows are addressed by pages.
		return nil, fmt.Errorf("displayio: row start %d is not a multiple of 8", cfg.RowStart)
	}
	cmds, err := Decode(init)
	if err != nil {
		return nil, err
	}
	w, h := cfg.Width, cfg.Height
	if cfg.Rotation%180 != 0 {
		w, h = h, w
	}
	native := image.Rect(0, 0, w, h)
	d := &Dev{
		bus:    b,
		cfg:    *cfg,
		rect:   image.Rect(0, 0, cfg.Width, cfg.Height),
		native: native,
		buffer: image1bit.NewVerticalLSB(native),
	}
	for _, c := range cmds {
		if err := d.send(c.Op, c.Payload); err != nil {
			return nil, err
		}
		if c.Delay != 0 {
			time.Sleep(c.Delay)
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("displayio.Dev{%v, %s}", d.bus, d.rect.Max)
}

// Bus returns the bus the controller is connected to.
func (d *Dev) Bus() Bus {
	return d.bus
}

// NativeBounds returns the panel rectangle in the controller orientation,
// before rotation.
func (d *Dev) NativeBounds() image.Rectangle {
	return d.native
}

// Offset returns the position of the panel in the controller RAM.
func (d *Dev) Offset() image.Point {
	return image.Pt(d.cfg.ColStart, d.cfg.RowStart)
}

// Halt implements conn.Resource.
//
// It clears the display.
func (d *Dev) Halt() error {
	for i := range d.buffer.Pix {
		d.buffer.Pix[i] = 0
	}
	return d.flush()
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
//
// It is in the logical orientation, after rotation.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously, once this function returns, the display is updated.
// The whole frame is sent on every call.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.cfg.Rotation == 0 {
		if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
			// Exact size, full frame, image1bit encoding: fast path!
			copy(d.buffer.Pix, img.Pix)
		} else {
			draw.Src.Draw(d.buffer, r, src, sp)
		}
		return d.flush()
	}
	clipped := r.Intersect(d.rect)
	sp = sp.Add(clipped.Min.Sub(r.Min))
	r = clipped
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)
			nx, ny := d.toNative(x, y)
			d.buffer.Set(nx, ny, c)
		}
	}
	return d.flush()
}

// SetBrightness sends the brightness command with level in [0, 1].
func (d *Dev) SetBrightness(level float64) error {
	if d.cfg.BrightnessCommand == 0 {
		return errors.New("displayio: brightness is not supported by this controller")
	}
	if level < 0 || level > 1 || math.IsNaN(level) {
		return fmt.Errorf("displayio: invalid brightness %g", level)
	}
	return d.send(d.cfg.BrightnessCommand, []byte{byte(math.Round(level * 255))})
}

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel implements drivers.Displayer.
//
// The pixel is lit when c is closer to white than to black. Call Display to
// send the frame.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y))
	if !p.In(d.rect) {
		return
	}
	nx, ny := d.toNative(p.X, p.Y)
	d.buffer.Set(nx, ny, c)
}

// Display implements drivers.Displayer.
func (d *Dev) Display() error {
	return d.flush()
}

// toNative maps a logical pixel to the controller orientation.
func (d *Dev) toNative(x, y int) (int, int) {
	w, h := d.native.Dx(), d.native.Dy()
	switch d.cfg.Rotation {
	case 90:
		return w - 1 - y, x
	case 180:
		return w - 1 - x, h - 1 - y
	case 270:
		return y, h - 1 - x
	default:
		return x, y
	}
}

// flush sends the whole framebuffer.
func (d *Dev) flush() error {
	x0 := d.cfg.ColStart
	x1 := x0 + d.native.Dx() - 1
	// Rows are addressed by 8 pixels high pages.
	y0 := d.cfg.RowStart / 8
	y1 := (d.cfg.RowStart + d.native.Dy() - 1) / 8
	if err := d.send(d.cfg.SetColumnCommand, d.bounds(x0, x1)); err != nil {
		return err
	}
	if err := d.send(d.cfg.SetRowCommand, d.bounds(y0, y1)); err != nil {
		return err
	}
	return d.bus.WriteData(d.buffer.Pix)
}

func (d *Dev) bounds(start, end int) []byte {
	if d.cfg.SingleByteBounds {
		return []byte{byte(start), byte(end)}
	}
	return []byte{byte(start >> 8), byte(start), byte(end >> 8), byte(end)}
}

func (d *Dev) send(op byte, payload []byte) error {
	if d.cfg.DataAsCommands {
		return d.bus.WriteCommand(append([]byte{op}, payload...))
	}
	return Send(d.bus, op, payload)
}

var _ display.Drawer = &Dev{}
var _ drivers.Displayer = &Dev{}
