// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package displayio

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedSequence is returned when an init sequence is truncated or
// cannot be encoded.
var ErrMalformedSequence = errors.New("displayio: malformed init sequence")

const (
	delayFlag = 0x80
	// An encoded delay of 255 means 500ms.
	longDelay = 500 * time.Millisecond
)

// Command is one entry of an init sequence.
type Command struct {
	Op      byte
	Payload []byte
	// Delay to wait after the command. It is encoded with a millisecond
	// resolution, up to 254ms or exactly 500ms.
	Delay time.Duration
}

// Encode returns the wire form of cmds.
//
// It panics if a payload is longer than 127 bytes or a delay is not
// encodable; init sequences are static tables.
func Encode(cmds ...Command) []byte {
	var out []byte
	for _, c := range cmds {
		if len(c.Payload) >= delayFlag {
			panic(fmt.Errorf("%w: payload of 0x%02X is %d bytes", ErrMalformedSequence, c.Op, len(c.Payload)))
		}
		l := byte(len(c.Payload))
		if c.Delay != 0 {
			l |= delayFlag
		}
		out = append(out, c.Op, l)
		out = append(out, c.Payload...)
		if c.Delay != 0 {
			out = append(out, encodeDelay(c.Op, c.Delay))
		}
	}
	return out
}

func encodeDelay(op byte, d time.Duration) byte {
	if d == longDelay {
		return 255
	}
	ms := d / time.Millisecond
	if ms <= 0 || ms >= 255 || ms*time.Millisecond != d {
		panic(fmt.Errorf("%w: delay of 0x%02X is %s", ErrMalformedSequence, op, d))
	}
	return byte(ms)
}

// Decode parses seq into its commands.
func Decode(seq []byte) ([]Command, error) {
	var cmds []Command
	for i := 0; i < len(seq); {
		if i+2 > len(seq) {
			return nil, fmt.Errorf("%w: truncated entry at offset %d", ErrMalformedSequence, i)
		}
		op := seq[i]
		l := int(seq[i+1] &^ delayFlag)
		hasDelay := seq[i+1]&delayFlag != 0
		end := i + 2 + l
		if hasDelay {
			end++
		}
		if end > len(seq) {
			return nil, fmt.Errorf("%w: entry 0x%02X at offset %d needs %d bytes, %d left", ErrMalformedSequence, op, i, end-i, len(seq)-i)
		}
		c := Command{Op: op, Payload: seq[i+2 : i+2+l]}
		if hasDelay {
			c.Delay = time.Duration(seq[end-1]) * time.Millisecond
			if seq[end-1] == 255 {
				c.Delay = longDelay
			}
		}
		cmds = append(cmds, c)
		i = end
	}
	return cmds, nil
}

// PayloadOffset returns the index in seq of the first payload byte of the
// first entry for op.
func PayloadOffset(seq []byte, op byte) (int, error) {
	for i := 0; i+1 < len(seq); {
		l := int(seq[i+1] &^ delayFlag)
		if seq[i] == op {
			if l == 0 || i+2 >= len(seq) {
				return 0, fmt.Errorf("displayio: command 0x%02X has no payload", op)
			}
			return i + 2, nil
		}
		next := i + 2 + l
		if seq[i+1]&delayFlag != 0 {
			next++
		}
		i = next
	}
	return 0, fmt.Errorf("displayio: command 0x%02X not found", op)
}
