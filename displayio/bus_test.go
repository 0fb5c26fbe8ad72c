// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package displayio

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/spi/spitest"
)

// op is one transaction seen by recordBus.
type op struct {
	Cmd bool
	B   []byte
}

// recordBus is a Bus that records every transaction.
type recordBus struct {
	ops []op
	err error
}

func (r *recordBus) WriteCommand(c []byte) error {
	if r.err != nil {
		return r.err
	}
	r.ops = append(r.ops, op{Cmd: true, B: append([]byte(nil), c...)})
	return nil
}

func (r *recordBus) WriteData(d []byte) error {
	if r.err != nil {
		return r.err
	}
	r.ops = append(r.ops, op{B: append([]byte(nil), d...)})
	return nil
}

func TestSend(t *testing.T) {
	b := &recordBus{}
	if err := Send(b, 0xAE, nil); err != nil {
		t.Fatal(err)
	}
	if err := Send(b, 0x81, []byte{0xcf}); err != nil {
		t.Fatal(err)
	}
	expected := []op{
		{Cmd: true, B: []byte{0xAE}},
		{Cmd: true, B: []byte{0x81}},
		{B: []byte{0xcf}},
	}
	if diff := cmp.Diff(expected, b.ops); diff != "" {
		t.Fatalf("unexpected transactions (-want +got):\n%s", diff)
	}
}

func TestSend_error(t *testing.T) {
	want := errors.New("bus on fire")
	b := &recordBus{err: want}
	if err := Send(b, 0xAF, []byte{1}); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestI2C(t *testing.T) {
	record := &i2ctest.Record{}
	b, err := NewI2C(record, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s := b.String(); s == "" {
		t.Fatal("empty String()")
	}
	if err := b.WriteCommand([]byte{0xAE, 0xA8, 0x3f}); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteData([]byte{0xff, 0x00}); err != nil {
		t.Fatal(err)
	}
	expected := []i2ctest.IO{
		{Addr: DefaultI2CAddr, W: []byte{0x00, 0xAE, 0xA8, 0x3f}},
		{Addr: DefaultI2CAddr, W: []byte{0x40, 0xff, 0x00}},
	}
	if diff := cmp.Diff(expected, record.Ops, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("unexpected transactions (-want +got):\n%s", diff)
	}
}

func TestI2C_address(t *testing.T) {
	record := &i2ctest.Record{}
	b, err := NewI2C(record, 0x3d)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.WriteCommand([]byte{0xAF}); err != nil {
		t.Fatal(err)
	}
	if record.Ops[0].Addr != 0x3d {
		t.Fatalf("expected address 0x3d, got 0x%x", record.Ops[0].Addr)
	}
	if _, err := NewI2C(record, 0x80); err == nil {
		t.Fatal("expected error for 10 bits address")
	}
	if _, err := NewI2C(nil, 0); err == nil {
		t.Fatal("expected error for nil bus")
	}
}

func TestI2C_error(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	b, err := NewI2C(bus, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.WriteCommand([]byte{0xAE}); err == nil {
		t.Fatal("expected playback error")
	}
}

func TestFourWire(t *testing.T) {
	record := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC", L: gpio.High}
	rst := &gpiotest.Pin{N: "RST"}
	b, err := NewFourWire(record, dc, rst)
	if err != nil {
		t.Fatal(err)
	}
	if dc.L != gpio.Low {
		t.Fatal("D/C must start low")
	}
	if rst.L != gpio.High {
		t.Fatal("reset must be released")
	}
	if s := b.String(); s == "" {
		t.Fatal("empty String()")
	}
	if err := b.WriteData([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if dc.L != gpio.High {
		t.Fatal("D/C must be high for data")
	}
	if err := b.WriteCommand([]byte{0xAF}); err != nil {
		t.Fatal(err)
	}
	if dc.L != gpio.Low {
		t.Fatal("D/C must be low for commands")
	}
	expected := []conntest.IO{{W: []byte{1, 2, 3}}, {W: []byte{0xAF}}}
	if diff := cmp.Diff(expected, record.Ops, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("unexpected transactions (-want +got):\n%s", diff)
	}
	if err := b.Reset(); err != nil {
		t.Fatal(err)
	}
	if rst.L != gpio.High {
		t.Fatal("reset must be released after the pulse")
	}
}

func TestFourWire_pins(t *testing.T) {
	if _, err := NewFourWire(&spitest.Record{}, nil, nil); err == nil {
		t.Fatal("expected error without D/C")
	}
	if _, err := NewFourWire(&spitest.Record{}, gpio.INVALID, nil); err == nil {
		t.Fatal("expected error with invalid D/C")
	}
	if _, err := NewFourWire(&spitest.Record{}, &gpiotest.Pin{N: "DC"}, gpio.INVALID); err == nil {
		t.Fatal("expected error with invalid reset")
	}
	b, err := NewFourWire(&spitest.Record{}, &gpiotest.Pin{N: "DC"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Reset(); err != nil {
		t.Fatalf("Reset without pin must be a no-op: %v", err)
	}
}

type tinyGoBus struct {
	addr []uint16
	w    [][]byte
}

func (t *tinyGoBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return errors.New("not implemented")
}

func (t *tinyGoBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return errors.New("not implemented")
}

func (t *tinyGoBus) Tx(addr uint16, w, r []byte) error {
	t.addr = append(t.addr, addr)
	t.w = append(t.w, append([]byte(nil), w...))
	return nil
}

func TestTinyGoI2C(t *testing.T) {
	tb := &tinyGoBus{}
	b := NewTinyGoI2C(tb, 0)
	if err := b.WriteCommand([]byte{0xAE}); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteData([]byte{0x55}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint16{0x3c, 0x3c}, tb.addr); diff != "" {
		t.Fatalf("unexpected addresses (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]byte{{0x00, 0xAE}, {0x40, 0x55}}, tb.w); diff != "" {
		t.Fatalf("unexpected writes (-want +got):\n%s", diff)
	}
	if s := b.String(); s != "TinyGoI2C{0x3c}" {
		t.Fatalf("unexpected String(): %q", s)
	}
}
