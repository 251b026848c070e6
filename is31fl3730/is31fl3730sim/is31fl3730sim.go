// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package is31fl3730sim emulates IS31FL3730 chips behind an i2c.Bus.
//
// The emulated chip keeps the register file the driver writes to, latches
// staged display data on Update Column writes and tracks the per-segment
// current. It lets the Reboot boards be exercised without hardware, and
// lets tests check what the real chip would be showing.
//
// Useful while the boards are still in the mail.
package is31fl3730sim

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GermanBionicSystems/reboot/is31fl3730"
	"github.com/GermanBionicSystems/reboot/sevenseg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	regData           byte = 0x01
	regUpdateColumn   byte = 0x0c
	regLightingEffect byte = 0x0d
	regPWM            byte = 0x19
	regReset          byte = 0xff

	defaultPWM byte = 0x80

	// RatedCurrent is the highest per-segment current the Reboot display
	// segments are rated for.
	RatedCurrent physic.ElectricCurrent = 20 * physic.MilliAmpere
)

var (
	// ErrWriteOnly is returned on any attempt to read from a chip.
	ErrWriteOnly = errors.New("is31fl3730sim: IS31FL3730 registers are write-only")
	// ErrNack is returned for transactions to an address without a chip.
	ErrNack = errors.New("is31fl3730sim: address not acknowledged")
)

// Chip is one emulated IS31FL3730.
type Chip struct {
	mu         sync.Mutex
	addr       uint16
	digits     int
	regs       [256]byte
	visible    [is31fl3730.MaxDigits]byte
	commits    int
	violations int
}

func newChip(addr uint16, digits int) *Chip {
	c := &Chip{addr: addr, digits: digits}
	c.reset()
	return c
}

// reset restores the power-on register values: blank matrix, 40mA and full
// PWM.
func (c *Chip) reset() {
	c.regs = [256]byte{}
	c.regs[regPWM] = defaultPWM
	c.visible = [is31fl3730.MaxDigits]byte{}
}

func (c *Chip) write(w []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(w) < 2 {
		return
	}
	reg := w[0]
	for i, v := range w[1:] {
		c.set(reg+byte(i), v)
	}
}

func (c *Chip) set(reg, v byte) {
	switch reg {
	case regUpdateColumn:
		copy(c.visible[:], c.regs[regData:regData+is31fl3730.MaxDigits])
		c.commits++
		c.check()
	case regReset:
		c.reset()
	default:
		c.regs[reg] = v
		if reg == regLightingEffect {
			c.check()
		}
	}
}

// check counts a violation when segments are lit with too much current.
func (c *Chip) check() {
	if c.current() > RatedCurrent && c.lit() {
		c.violations++
	}
}

func (c *Chip) lit() bool {
	for _, p := range c.visible[:c.digits] {
		if p != sevenseg.Blank {
			return true
		}
	}
	return false
}

func (c *Chip) current() physic.ElectricCurrent {
	return is31fl3730.CurrentLimit(c.regs[regLightingEffect]).Current()
}

// Addr returns the I²C address of the chip.
func (c *Chip) Addr() uint16 {
	return c.addr
}

// Digits returns the number of digits wired to the chip.
func (c *Chip) Digits() int {
	return c.digits
}

// Visible returns the committed segment patterns, one per digit.
func (c *Chip) Visible() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.visible[:c.digits]...)
}

// Staged returns the segment patterns waiting for an Update Column write.
func (c *Chip) Staged() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.regs[regData:regData+byte(c.digits)]...)
}

// Text returns the visible digits as text. Patterns that are not digits
// show as '?'.
func (c *Chip) Text() string {
	var sb strings.Builder
	for _, p := range c.Visible() {
		r, ok := sevenseg.Decode(p)
		if !ok {
			r = '?'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// PWM returns the PWM register.
func (c *Chip) PWM() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[regPWM]
}

// Brightness returns the duty cycle selected by the PWM register, in [0, 1].
func (c *Chip) Brightness() float64 {
	pwm := c.PWM()
	if pwm&is31fl3730.PWMFull != 0 {
		return 1
	}
	return float64(pwm) / 128
}

// Current returns the per-segment current selected by the Lighting Effect
// register.
func (c *Chip) Current() physic.ElectricCurrent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current()
}

// Safe reports whether the current limit is within RatedCurrent.
func (c *Chip) Safe() bool {
	return c.Current() <= RatedCurrent
}

// Commits returns the number of Update Column writes.
func (c *Chip) Commits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commits
}

// Violations returns how many times segments were lit while the current
// limit exceeded RatedCurrent.
func (c *Chip) Violations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.violations
}

func (c *Chip) String() string {
	return fmt.Sprintf("IS31FL3730(0x%02x)", c.addr)
}

// Bus is an i2c.Bus with emulated chips attached.
type Bus struct {
	mu    sync.Mutex
	chips map[uint16]*Chip
}

// NewBus returns a Bus without chips.
func NewBus() *Bus {
	return &Bus{chips: map[uint16]*Chip{}}
}

// Add attaches a chip at addr driving digits digits and returns it. A chip
// already at addr is replaced.
func (b *Bus) Add(addr uint16, digits int) *Chip {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := newChip(addr, min(max(digits, 1), is31fl3730.MaxDigits))
	b.chips[addr] = c
	return c
}

// Remove detaches the chip at addr. Later transactions to addr are not
// acknowledged.
func (b *Bus) Remove(addr uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.chips, addr)
}

// Chip returns the chip at addr, or nil.
func (b *Bus) Chip(addr uint16) *Chip {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chips[addr]
}

// Chips returns the attached chips sorted by address.
func (b *Bus) Chips() []*Chip {
	b.mu.Lock()
	defer b.mu.Unlock()
	chips := make([]*Chip, 0, len(b.chips))
	for _, c := range b.chips {
		chips = append(chips, c)
	}
	sort.Slice(chips, func(i, j int) bool { return chips[i].addr < chips[j].addr })
	return chips
}

func (b *Bus) String() string {
	return "is31fl3730sim"
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.chips[addr]
	if !ok {
		return fmt.Errorf("%w: 0x%02x", ErrNack, addr)
	}
	if len(r) != 0 {
		return ErrWriteOnly
	}
	c.write(w)
	return nil
}

// SetSpeed implements i2c.Bus.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return nil
}

// Close implements i2c.BusCloser.
func (b *Bus) Close() error {
	return nil
}

var _ i2c.BusCloser = &Bus{}
