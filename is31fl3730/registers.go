// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package is31fl3730

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

const (
	// Register offsets from the datasheet.
	_REGISTER_DATA            byte = 0x01
	_REGISTER_UPDATE_COLUMN   byte = 0x0c
	_REGISTER_LIGHTING_EFFECT byte = 0x0d
	_REGISTER_PWM             byte = 0x19
	_REGISTER_RESET           byte = 0xff

	// Value written to registers that only care about being written to.
	_ANY_VALUE byte = 0x00

	// MaxDigits is the number of data registers of one matrix.
	MaxDigits = 11

	// PWMFull is the PWM register value for full brightness. Lower values
	// select one of 128 steps, 0x00-0x7f.
	PWMFull byte = 0x80

	// DefaultCurrent is the per-segment current the chip uses after power-up
	// or a reset. It is too high for the Reboot displays.
	DefaultCurrent physic.ElectricCurrent = 40 * physic.MilliAmpere
)

// CurrentLimit is the value of the Lighting Effect register selecting the
// per-segment drive current.
type CurrentLimit byte

const (
	// CurrentMin drives each segment with about 10mA.
	CurrentMin CurrentLimit = 0x08
	// CurrentMax drives each segment with about 20mA, the highest rating of
	// the Reboot displays.
	CurrentMax CurrentLimit = 0x0b
)

// Current returns the per-segment current l selects. Values other than
// CurrentMin and CurrentMax return DefaultCurrent since they are never
// written.
func (l CurrentLimit) Current() physic.ElectricCurrent {
	switch l {
	case CurrentMin:
		return 10 * physic.MilliAmpere
	case CurrentMax:
		return 20 * physic.MilliAmpere
	default:
		return DefaultCurrent
	}
}

func (l CurrentLimit) String() string {
	switch l {
	case CurrentMin:
		return "CurrentMin(" + l.Current().String() + ")"
	case CurrentMax:
		return "CurrentMax(" + l.Current().String() + ")"
	default:
		return fmt.Sprintf("CurrentLimit(0x%02x)", byte(l))
	}
}

// PWM converts a brightness percentage into a PWM register value.
//
// percent is clamped to [0, 100] and scaled to [0, 128], rounding to the
// nearest step. 128 is returned as PWMFull.
func PWM(percent int) byte {
	if percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return PWMFull
	}
	duty := (percent*128 + 50) / 100
	if duty >= 128 {
		return PWMFull
	}
	return byte(duty)
}
