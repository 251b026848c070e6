// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2r2i2c

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeDevice struct {
	addr    uint8
	written [][]byte
	read    []byte
	short   bool
	closed  bool
}

func (f *fakeDevice) WriteBytes(buf []byte) (int, error) {
	f.written = append(f.written, append([]byte(nil), buf...))
	if f.short {
		return len(buf) - 1, nil
	}
	return len(buf), nil
}

func (f *fakeDevice) ReadBytes(buf []byte) (int, error) {
	return copy(buf, f.read), nil
}

func (f *fakeDevice) Close() error {
	f.closed = true
	return nil
}

func newFake() (*Bus, map[uint8]*fakeDevice) {
	devs := map[uint8]*fakeDevice{}
	b := &Bus{n: 1, devs: map[uint16]device{}}
	b.open = func(addr uint8, bus int) (device, error) {
		if addr == 0x10 {
			return nil, errors.New("no such device")
		}
		d := &fakeDevice{addr: addr, read: []byte{0xaa, 0xbb}}
		devs[addr] = d
		return d, nil
	}
	return b, devs
}

func TestTx(t *testing.T) {
	b, devs := newFake()
	if err := b.Tx(0x63, []byte{0x0d, 0x0b}, nil); err != nil {
		t.Fatal(err)
	}
	if err := b.Tx(0x60, []byte{0x0c, 0x00}, nil); err != nil {
		t.Fatal(err)
	}
	if err := b.Tx(0x63, []byte{0x19, 0x80}, nil); err != nil {
		t.Fatal(err)
	}
	if len(devs) != 2 {
		t.Fatalf("expected one handle per address, got %d", len(devs))
	}
	if diff := cmp.Diff(devs[0x63].written, [][]byte{{0x0d, 0x0b}, {0x19, 0x80}}); diff != "" {
		t.Errorf("writes difference (-got +want):\n%s", diff)
	}

	r := make([]byte, 2)
	if err := b.Tx(0x60, nil, r); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(r, []byte{0xaa, 0xbb}); diff != "" {
		t.Errorf("read difference (-got +want):\n%s", diff)
	}

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if !devs[0x63].closed || !devs[0x60].closed {
		t.Error("handles not closed")
	}
}

func TestTxErrors(t *testing.T) {
	b, devs := newFake()
	if err := b.Tx(0x80, []byte{0x00}, nil); !errors.Is(err, ErrAddress) {
		t.Errorf("expected ErrAddress, got %v", err)
	}
	if err := b.Tx(0x10, []byte{0x00}, nil); err == nil || err.Error() != "d2r2i2c: no such device" {
		t.Errorf("unexpected error %v", err)
	}
	if err := b.Tx(0x60, []byte{0x00}, nil); err != nil {
		t.Fatal(err)
	}
	devs[0x60].short = true
	if err := b.Tx(0x60, []byte{0x01, 0x02}, nil); err == nil {
		t.Error("expected a short write error")
	}
	if err := b.Tx(0x60, nil, make([]byte, 3)); err == nil {
		t.Error("expected a short read error")
	}
	if err := b.SetSpeed(0); !errors.Is(err, ErrSpeed) {
		t.Errorf("expected ErrSpeed, got %v", err)
	}
	if s := b.String(); s != "/dev/i2c-1" {
		t.Errorf("String() = %q", s)
	}
}
