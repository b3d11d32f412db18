// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpioterm renders an 8-bit port snapshot to terminal (stdout) using
// ANSI color codes.
//
// Useful to watch an I/O expander's pins flip during board bring up, without
// wiring any LEDs.
package gpioterm

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for the renderer.
type Opts struct {
	// W is the destination. Defaults to a colorable stdout.
	W io.Writer
	// Palette quantizes cell colors to the terminal's 256 color space.
	Palette *ansi256.Palette
	// High and Low are the cell colors for set and cleared bits. Green on
	// dark gray when left zero.
	High color.NRGBA
	Low  color.NRGBA

	_ struct{}
}

// Dev renders port snapshots as a row of eight colored cells over the current
// terminal line.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	high    color.NRGBA
	low     color.NRGBA

	buf bytes.Buffer
}

// New returns a Dev that renders at the console. If opts is nil, the defaults
// are used.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		palette: *p,
		high:    opts.High,
		low:     opts.Low,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.high == (color.NRGBA{}) {
		d.high = color.NRGBA{G: 255, A: 255}
	}
	if d.low == (color.NRGBA{}) {
		d.low = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	}
	return d
}

func (d *Dev) String() string {
	return "GPIOTerm"
}

// Halt implements conn.Resource.
//
// It moves past the rendered row and resets the terminal state.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Render draws v over the current line, bit 7 leftmost so the row reads like
// the snapshot's binary form.
func (d *Dev) Render(v byte) error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 7; i >= 0; i-- {
		c := d.low
		if v&(1<<i) != 0 {
			c = d.high
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ conn.Resource = &Dev{}
