// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package is31fl3730sim

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/reboot/sevenseg"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// TerminalOpts represents the options available for a Terminal.
type TerminalOpts struct {
	// W defaults to a colorable stdout.
	W       io.Writer
	Palette *ansi256.Palette
	// On is the color of a lit segment at full brightness.
	On color.NRGBA
	// Off is the color of an unlit segment.
	Off color.NRGBA

	_ struct{}
}

// DefaultTerminalOpts draws red segments.
var DefaultTerminalOpts = TerminalOpts{
	On:  color.NRGBA{R: 255, G: 16, B: 16, A: 255},
	Off: color.NRGBA{R: 40, G: 0, B: 0, A: 255},
}

// cells is the block layout of one digit, 5 rows of 4 blocks. Zero is
// background.
var cells = [5][4]byte{
	{0, sevenseg.SegA, sevenseg.SegA, 0},
	{sevenseg.SegF, 0, 0, sevenseg.SegB},
	{0, sevenseg.SegG, sevenseg.SegG, 0},
	{sevenseg.SegE, 0, 0, sevenseg.SegC},
	{0, sevenseg.SegD, sevenseg.SegD, 0},
}

// Terminal draws emulated displays on a terminal using ANSI color codes.
type Terminal struct {
	w       io.Writer
	palette ansi256.Palette
	on      color.NRGBA
	off     color.NRGBA
	bg      color.NRGBA

	buf bytes.Buffer
}

// NewTerminal returns a Terminal. The opts can be nil, DefaultTerminalOpts
// is used then.
func NewTerminal(opts *TerminalOpts) *Terminal {
	if opts == nil {
		opts = &DefaultTerminalOpts
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Terminal{
		w:       w,
		palette: *p,
		on:      opts.On,
		off:     opts.Off,
		bg:      color.NRGBA{A: 255},
	}
}

func (t *Terminal) String() string {
	return "Terminal"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (t *Terminal) Halt() error {
	_, err := t.w.Write([]byte("\033[0m\n"))
	return err
}

// Render draws the visible digits of chips, one display per block of rows.
func (t *Terminal) Render(chips ...*Chip) error {
	t.buf.Reset()
	for _, c := range chips {
		visible := c.Visible()
		on := scale(t.on, c.Brightness())
		fmt.Fprintf(&t.buf, "\033[0m0x%02x %q %s pwm=0x%02x\n", c.Addr(), c.Text(), c.Current(), c.PWM())
		for _, row := range cells {
			for _, p := range visible {
				for _, seg := range row {
					col := t.bg
					if seg != 0 {
						col = t.off
						if p&seg != 0 {
							col = on
						}
					}
					_, _ = io.WriteString(&t.buf, t.palette.Block(col))
				}
				_, _ = io.WriteString(&t.buf, t.palette.Block(t.bg))
			}
			_, _ = t.buf.WriteString("\033[0m\n")
		}
	}
	_, err := t.buf.WriteTo(t.w)
	return err
}

func scale(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

var _ conn.Resource = &Terminal{}
