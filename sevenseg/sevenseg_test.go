// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevenseg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDigits(t *testing.T) {
	expected := map[rune]byte{
		'0': 0x3f, '1': 0x06, '2': 0x5b, '3': 0x4f, '4': 0x66,
		'5': 0x6d, '6': 0x7d, '7': 0x07, '8': 0x7f, '9': 0x6f,
	}
	for r, want := range expected {
		if got := Encode(r); got != want {
			t.Errorf("Encode(%q) = 0x%02x, expected 0x%02x", r, got, want)
		}
	}
}

func TestEncodeBlank(t *testing.T) {
	for _, r := range []rune{' ', 'A', 'b', 'E', 'k', 'x', '-', '.', '/', ':', 0, '\n', 0x7f, 'é', '٣', -1} {
		if got := Encode(r); got != Blank {
			t.Errorf("Encode(%q) = 0x%02x, expected blank", r, got)
		}
	}
	for r := rune(0); r < 0x100; r++ {
		if r >= '0' && r <= '9' {
			continue
		}
		if Encode(r) != Blank {
			t.Errorf("Encode(0x%02x) not blank", r)
		}
	}
}

func TestEncodeString(t *testing.T) {
	for _, test := range []struct {
		name string
		s    string
		n    int
		want []byte
	}{
		{name: "exact", s: "1234", n: 4, want: []byte{0x06, 0x5b, 0x4f, 0x66}},
		{name: "padded", s: "42", n: 4, want: []byte{0x66, 0x5b, 0, 0}},
		{name: "truncated", s: "1234567", n: 6, want: []byte{0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d}},
		{name: "multibyte", s: "é9", n: 2, want: []byte{0, 0x6f}},
		{name: "empty", s: "", n: 3, want: []byte{0, 0, 0}},
		{name: "zero", s: "12", n: 0, want: nil},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := EncodeString(test.s, test.n)
			if diff := cmp.Diff(got, test.want); diff != "" {
				t.Errorf("EncodeString(%q, %d) difference (-got +want):\n%s", test.s, test.n, diff)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	for r := '0'; r <= '9'; r++ {
		got, ok := Decode(Encode(r))
		if !ok || got != r {
			t.Errorf("Decode(Encode(%q)) = %q, %t", r, got, ok)
		}
	}
	if r, ok := Decode(Blank); !ok || r != ' ' {
		t.Errorf("Decode(Blank) = %q, %t", r, ok)
	}
	if _, ok := Decode(SegA | SegD); ok {
		t.Error("Decode(SegA|SegD) should not decode")
	}
}
