// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package is31fl3730 drives an ISSI IS31FL3730 LED matrix controller wired
// to a multi-digit 7-segment display, as found on the Reboot display boards.
//
// The chip is write-only. Display data written to the data registers is held
// in temporary registers and only becomes visible after a write to the
// Update Column register, so every Write is two I²C transactions: one that
// stages the digits and one that commits them.
//
// # Current limit
//
// On power-up and after a reset the chip drives each segment with 40mA,
// twice what the segments of the Reboot displays are rated for. New and
// Reset always follow up with a CurrentMax (20mA) write. Since the register
// cannot be read back, the driver does not keep or report the setting.
//
// # Datasheet
//
// https://www.lumissil.com/assets/pdf/core/IS31FL3730_DS.pdf
package is31fl3730
