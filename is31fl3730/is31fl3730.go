// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package is31fl3730

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GermanBionicSystems/reboot/sevenseg"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

const packageName = "is31fl3730"

var (
	// ErrInvalidDigits is returned by New when Opts.Digits does not fit in
	// the data registers.
	ErrInvalidDigits = errors.New(packageName + ": invalid number of digits")
	// ErrUnsafeCurrent is returned when asked to write a current limit other
	// than CurrentMin or CurrentMax.
	ErrUnsafeCurrent = errors.New(packageName + ": unsupported current limit")
)

// Opts represents configurable options for the IS31FL3730.
type Opts struct {
	// Addr is the I²C address of the chip.
	Addr uint16
	// Digits is the number of 7-segment digits wired to the matrix.
	Digits int
	// SafetyRetries is how many more times New and Reset write CurrentMax
	// after a failed attempt.
	SafetyRetries int
}

// DefaultOpts is the 6 digit Reboot display.
var DefaultOpts = Opts{
	Addr:          0x60,
	Digits:        6,
	SafetyRetries: 2,
}

// Dev is a handle to an IS31FL3730 driving a 7-segment display.
//
// Dev is not safe for concurrent use.
type Dev struct {
	d       *i2c.Dev
	digits  int
	retries int
}

// New returns a Dev for the chip at opts.Addr. The chip is switched to
// CurrentMax before New returns. The Opts can be nil, DefaultOpts is used
// then.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Digits < 1 || opts.Digits > MaxDigits {
		return nil, ErrInvalidDigits
	}
	retries := opts.SafetyRetries
	if retries < 0 {
		retries = 0
	}
	dev := &Dev{
		d:       &i2c.Dev{Bus: bus, Addr: opts.Addr},
		digits:  opts.Digits,
		retries: retries,
	}
	if err := dev.forceCurrentMax(); err != nil {
		return nil, err
	}
	return dev, nil
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// txn accumulates one register write. The bytes are sent as a single I²C
// write when end is called.
type txn struct {
	d *i2c.Dev
	w []byte
}

func (dev *Dev) begin(register byte) *txn {
	w := make([]byte, 1, dev.digits+1)
	w[0] = register
	return &txn{d: dev.d, w: w}
}

func (t *txn) writeByte(b byte) {
	t.w = append(t.w, b)
}

func (t *txn) end() error {
	return wrap(t.d.Tx(t.w, nil))
}

func (dev *Dev) writeRegister(register, value byte) error {
	t := dev.begin(register)
	t.writeByte(value)
	return t.end()
}

// Digits returns the number of digits of the display.
func (dev *Dev) Digits() int {
	return dev.digits
}

// Write displays text, one rune per digit starting from the left. Runes
// past the last digit are ignored and missing ones are blank. Runes without
// a 7-segment glyph are blank too.
func (dev *Dev) Write(text []rune) error {
	return dev.WriteSegments(sevenseg.EncodeString(string(text), dev.digits))
}

// WriteString is a convenience wrapper around Write.
func (dev *Dev) WriteString(s string) error {
	return dev.Write([]rune(s))
}

// WriteSegments displays raw segment patterns in gfedcba order, one byte per
// digit, padded with blanks.
//
// The patterns are staged in the temporary registers first. The Update
// Column register is written only once staging succeeded, so the display
// never shows a partial update.
func (dev *Dev) WriteSegments(patterns []byte) error {
	t := dev.begin(_REGISTER_DATA)
	for i := 0; i < dev.digits; i++ {
		if i < len(patterns) {
			t.writeByte(patterns[i])
		} else {
			t.writeByte(sevenseg.Blank)
		}
	}
	if err := t.end(); err != nil {
		return err
	}
	return dev.writeRegister(_REGISTER_UPDATE_COLUMN, _ANY_VALUE)
}

// Reset returns every register of the chip to its power-on value, blanking
// the display, then restores CurrentMax.
//
// CurrentMax is written even if the reset itself failed since the chip may
// have processed it anyway.
func (dev *Dev) Reset() error {
	err := dev.writeRegister(_REGISTER_RESET, _ANY_VALUE)
	return errors.Join(err, dev.forceCurrentMax())
}

func (dev *Dev) forceCurrentMax() error {
	var err error
	for i := 0; i < dev.retries+1; i++ {
		if err = dev.SetCurrentLimit(CurrentMax); err == nil {
			return nil
		}
	}
	return err
}

// SetCurrentLimit sets the per-segment drive current. Only CurrentMin and
// CurrentMax are accepted.
func (dev *Dev) SetCurrentLimit(l CurrentLimit) error {
	if l != CurrentMin && l != CurrentMax {
		return ErrUnsafeCurrent
	}
	return dev.writeRegister(_REGISTER_LIGHTING_EFFECT, byte(l))
}

// SetBrightness sets the display brightness in percent. Values outside
// [0, 100] are clamped. See PWM for the conversion.
func (dev *Dev) SetBrightness(percent int) error {
	return dev.writeRegister(_REGISTER_PWM, PWM(percent))
}

// Halt blanks the display. Implements conn.Resource.
func (dev *Dev) Halt() error {
	return dev.WriteSegments(nil)
}

func (dev *Dev) String() string {
	return fmt.Sprintf("IS31FL3730{%s, digits: %d}", dev.d, dev.digits)
}

var _ conn.Resource = &Dev{}
