// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sevenseg converts characters into 7-segment display patterns.
//
// Patterns use the conventional gfedcba bit order:
//
//	 a
//	---
//	f|g|b
//	---
//	e| |c
//	---
//	 d
//
// Bit 7 is unused. Only the decimal digits have a glyph. Letters are left
// out on purpose: several of them (k, m, v, w, x) have no readable 7-segment
// shape and upper/lower case cannot be told apart on most of the others.
package sevenseg

const (
	SegA byte = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG

	// Blank turns every segment of a digit off.
	Blank byte = 0
)

var digits = [10]byte{
	SegA | SegB | SegC | SegD | SegE | SegF,        // 0 = 0x3f
	SegB | SegC,                                    // 1 = 0x06
	SegA | SegB | SegG | SegE | SegD,               // 2 = 0x5b
	SegA | SegB | SegG | SegC | SegD,               // 3 = 0x4f
	SegF | SegG | SegB | SegC,                      // 4 = 0x66
	SegA | SegF | SegG | SegC | SegD,               // 5 = 0x6d
	SegA | SegF | SegE | SegD | SegC | SegG,        // 6 = 0x7d
	SegA | SegB | SegC,                             // 7 = 0x07
	SegA | SegB | SegC | SegD | SegE | SegF | SegG, // 8 = 0x7f
	SegA | SegB | SegC | SegD | SegF | SegG,        // 9 = 0x6f
}

// Encode returns the segment pattern for r. Characters without a glyph
// return Blank.
func Encode(r rune) byte {
	if r < '0' || r > '9' {
		return Blank
	}
	return digits[r-'0']
}

// EncodeString encodes the first n runes of s. When s is shorter than n, the
// remaining positions are Blank.
func EncodeString(s string, n int) []byte {
	if n <= 0 {
		return nil
	}
	b := make([]byte, n)
	i := 0
	for _, r := range s {
		if i == n {
			break
		}
		b[i] = Encode(r)
		i++
	}
	return b
}

// Decode returns the character Encode maps to pattern. Blank decodes to a
// space. ok is false for patterns without a character.
func Decode(pattern byte) (r rune, ok bool) {
	if pattern == Blank {
		return ' ', true
	}
	for i, p := range digits {
		if p == pattern {
			return rune('0' + i), true
		}
	}
	return 0, false
}
