// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reboot

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/GermanBionicSystems/reboot/is31fl3730"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// Identity selects one of the two displays.
type Identity int

const (
	SixDigit Identity = iota
	FourDigit
)

// IdentityFor returns the display selected by digits.
func IdentityFor(digits int) Identity {
	if digits == 4 {
		return FourDigit
	}
	return SixDigit
}

// Addr returns the I²C address of the display's IS31FL3730.
func (id Identity) Addr() uint16 {
	if id == FourDigit {
		return 0x63
	}
	return 0x60
}

// Digits returns the number of digits of the display.
func (id Identity) Digits() int {
	if id == FourDigit {
		return 4
	}
	return 6
}

func (id Identity) String() string {
	if id == FourDigit {
		return "FourDigit"
	}
	return "SixDigit"
}

// Opts represents configurable options for a Board.
type Opts struct {
	// Numeral returns a random integer in [100000, 999999] for WriteRandom.
	// Defaults to math/rand/v2.
	Numeral func() int
	// SafetyRetries is passed to both displays, see is31fl3730.Opts.
	SafetyRetries int
	// DemoRound, if set, is called by Demo after each round was written.
	DemoRound func(round int)
}

// DefaultOpts uses math/rand/v2 for random numerals.
var DefaultOpts = Opts{
	Numeral:       randomNumeral,
	SafetyRetries: 2,
}

func randomNumeral() int {
	return 100000 + rand.Intn(900000)
}

// Board is a handle to both Reboot displays.
type Board struct {
	displays  [2]*is31fl3730.Dev
	numeral   func() int
	demoRound func(round int)
}

// New initializes both displays. When New returns successfully both chips
// run at is31fl3730.CurrentMax with a blank display. The Opts can be nil.
func New(bus i2c.Bus, opts *Opts) (*Board, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	b := &Board{numeral: opts.Numeral, demoRound: opts.DemoRound}
	if b.numeral == nil {
		b.numeral = randomNumeral
	}
	var errs []error
	for _, id := range []Identity{FourDigit, SixDigit} {
		d, err := is31fl3730.New(bus, &is31fl3730.Opts{
			Addr:          id.Addr(),
			Digits:        id.Digits(),
			SafetyRetries: opts.SafetyRetries,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("reboot: %s display: %w", id, err))
			continue
		}
		b.displays[id] = d
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}

// Display returns the driver of one display. Unknown identities select the
// 6 digit display, like Addr and Digits do.
func (b *Board) Display(id Identity) *is31fl3730.Dev {
	return b.displays[IdentityFor(id.Digits())]
}

func (b *Board) display(digits int) *is31fl3730.Dev {
	return b.displays[IdentityFor(digits)]
}

// WriteText shows text on the display selected by digits. text is cut or
// padded with blanks to the number of digits of the display.
func (b *Board) WriteText(digits int, text string) error {
	id := IdentityFor(digits)
	runes := []rune(text)
	if len(runes) > id.Digits() {
		runes = runes[:id.Digits()]
	}
	for len(runes) < id.Digits() {
		runes = append(runes, ' ')
	}
	return b.displays[id].Write(runes)
}

// WriteRandom shows a random number on the display selected by digits.
func (b *Board) WriteRandom(digits int) error {
	id := IdentityFor(digits)
	s := fmt.Sprintf("%06d", b.numeral())
	return b.WriteText(digits, s[:id.Digits()])
}

// ResetDisplay resets the display selected by digits. The display is blank
// and back at is31fl3730.CurrentMax when ResetDisplay returns, unless an
// error is returned.
func (b *Board) ResetDisplay(digits int) error {
	return b.display(digits).Reset()
}

// SetBrightness sets the brightness of the display selected by digits, in
// percent.
func (b *Board) SetBrightness(digits, percent int) error {
	return b.display(digits).SetBrightness(percent)
}

// Halt blanks both displays. Implements conn.Resource.
func (b *Board) Halt() error {
	return errors.Join(b.displays[FourDigit].Halt(), b.displays[SixDigit].Halt())
}

func (b *Board) String() string {
	var names []string
	for _, d := range b.displays {
		names = append(names, d.String())
	}
	return "Reboot{" + strings.Join(names, ", ") + "}"
}

var _ conn.Resource = &Board{}
