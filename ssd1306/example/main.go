// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// example draws a greeting on a SSD1306 display, then puts it to sleep and
// wakes it up.
//
// Use -bus term to render on the terminal when no display is wired.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/oled/displayio"
	"github.com/GermanBionicSystems/oled/oledterm"
	"github.com/GermanBionicSystems/oled/ssd1306"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

func main() {
	busType := flag.String("bus", "i2c", "Bus type: i2c, spi or term")
	i2cName := flag.String("i2c", "", "I²C bus to use")
	addr := flag.Uint("addr", uint(displayio.DefaultI2CAddr), "I²C address")
	spiName := flag.String("spi", "", "SPI port to use")
	dcName := flag.String("dc", "GPIO25", "D/C pin for SPI")
	rstName := flag.String("rst", "", "Reset pin for SPI, optional")
	width := flag.Int("width", 128, "Display width")
	height := flag.Int("height", 64, "Display height")
	rotation := flag.Int("rotation", 0, "Rotation in degrees: 0, 90, 180 or 270")
	text := flag.String("text", "Hello!", "Text to display")
	pause := flag.Duration("sleep", 2*time.Second, "Time to sleep between steps")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	opts := ssd1306.Opts{W: *width, H: *height, Rotation: *rotation, Addr: uint16(*addr)}
	dev, closer, err := open(*busType, *i2cName, *spiName, *dcName, *rstName, &opts)
	if err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}
	defer closer()
	fmt.Fprintf(os.Stderr, "device=%s\n", dev)

	img, err := render(dev.Bounds(), *text)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		log.Fatal(err)
	}
	time.Sleep(*pause)

	if err := dev.Sleep(); err != nil {
		log.Fatal(err)
	}
	time.Sleep(*pause)
	if err := dev.Wake(); err != nil {
		log.Fatal(err)
	}
	time.Sleep(*pause)
	if err := dev.Halt(); err != nil {
		log.Fatal(err)
	}
}

// open returns the display on the requested bus and a function to release
// it.
func open(busType, i2cName, spiName, dcName, rstName string, opts *ssd1306.Opts) (*ssd1306.Dev, func(), error) {
	switch busType {
	case "i2c":
		b, err := i2creg.Open(i2cName)
		if err != nil {
			return nil, nil, err
		}
		dev, err := ssd1306.NewI2C(b, opts)
		if err != nil {
			_ = b.Close()
			return nil, nil, err
		}
		return dev, func() { _ = b.Close() }, nil
	case "spi":
		p, err := spireg.Open(spiName)
		if err != nil {
			return nil, nil, err
		}
		dc := gpioreg.ByName(dcName)
		if dc == nil {
			_ = p.Close()
			return nil, nil, fmt.Errorf("unknown D/C pin %q", dcName)
		}
		var rst gpio.PinOut
		if rstName != "" {
			if rst = gpioreg.ByName(rstName); rst == nil {
				_ = p.Close()
				return nil, nil, fmt.Errorf("unknown reset pin %q", rstName)
			}
		}
		dev, err := ssd1306.NewSPI(p, dc, rst, opts)
		if err != nil {
			_ = p.Close()
			return nil, nil, err
		}
		return dev, func() { _ = p.Close() }, nil
	case "term":
		_, colStart, rowStart, err := ssd1306.InitSequence(opts)
		if err != nil {
			return nil, nil, err
		}
		w, h := opts.W, opts.H
		if opts.Rotation%180 != 0 {
			w, h = h, w
		}
		t := oledterm.New(&oledterm.Opts{Width: w, Height: h, ColStart: colStart, RowStart: rowStart})
		dev, err := ssd1306.New(t, opts)
		if err != nil {
			return nil, nil, err
		}
		return dev, func() { _ = t.Halt() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown bus %q", busType)
	}
}

// render draws text centered with the Go font and a caption at the bottom.
func render(r image.Rectangle, text string) (*image1bit.VerticalLSB, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: float64(r.Dy()) / 3}))
	dc.SetColor(color.White)
	dc.DrawStringAnchored(text, float64(r.Dx())/2, float64(r.Dy())/3, 0.5, 0.5)

	img := image1bit.NewVerticalLSB(r)
	draw.Draw(img, r, dc.Image(), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: face,
		Dot:  fixed.P(0, r.Dy()-1-face.Descent),
	}
	drawer.DrawString(fmt.Sprintf("%dx%d", r.Dx(), r.Dy()))
	return img, nil
}
