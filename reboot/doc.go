// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package reboot drives the GhostLab42 Reboot dual-display board set: a 4
// digit and a 6 digit 7-segment display, each behind its own IS31FL3730 on a
// shared I²C bus.
//
// Displays are selected by digit count. 4 selects the 4 digit display, every
// other value selects the 6 digit display.
//
// Board is not safe for concurrent use. Callers sharing a Board between
// goroutines must serialize calls.
package reboot
