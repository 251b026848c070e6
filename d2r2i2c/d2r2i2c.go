// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package d2r2i2c exposes a Linux /dev/i2c-N bus through
// github.com/d2r2/go-i2c as a periph i2c.Bus.
//
// It is an alternative to periph's host drivers on boards periph does not
// detect. go-i2c binds a file handle to one address, so a handle is opened
// the first time each address is used.
package d2r2i2c

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	i2c "github.com/d2r2/go-i2c"
	logger "github.com/d2r2/go-logger"
	conni2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const packageName = "d2r2i2c"

var (
	// ErrAddress is returned for addresses that do not fit in 7 bits.
	ErrAddress = errors.New(packageName + ": invalid 7 bit address")
	// ErrSpeed is returned by SetSpeed; the speed is set by the kernel
	// driver.
	ErrSpeed = errors.New(packageName + ": bus speed is fixed by the kernel driver")
)

// device is the part of *i2c.I2C in use.
type device interface {
	WriteBytes(buf []byte) (int, error)
	ReadBytes(buf []byte) (int, error)
	Close() error
}

func openDevice(addr uint8, bus int) (device, error) {
	return i2c.NewI2C(addr, bus)
}

// Bus is /dev/i2c-N.
type Bus struct {
	mu   sync.Mutex
	n    int
	open func(addr uint8, bus int) (device, error)
	devs map[uint16]device
}

// New returns the bus /dev/i2c-n. Nothing is opened until the first Tx.
//
// go-i2c logs every transfer at debug level; New lowers it to info.
func New(n int) *Bus {
	_ = logger.ChangePackageLogLevel("i2c", logger.InfoLevel)
	return &Bus{n: n, open: openDevice, devs: map[uint16]device{}}
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

func (b *Bus) String() string {
	return fmt.Sprintf("/dev/i2c-%d", b.n)
}

// Tx implements i2c.Bus.
//
// The write and the read are two separate transfers, without a repeated
// start in between.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7f {
		return ErrAddress
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.devs[addr]
	if !ok {
		var err error
		if d, err = b.open(uint8(addr), b.n); err != nil {
			return wrap(err)
		}
		b.devs[addr] = d
	}
	if len(w) != 0 {
		n, err := d.WriteBytes(w)
		if err != nil {
			return wrap(err)
		}
		if n != len(w) {
			return fmt.Errorf("%s: short write to 0x%02x: %d of %d bytes", packageName, addr, n, len(w))
		}
	}
	if len(r) != 0 {
		n, err := d.ReadBytes(r)
		if err != nil {
			return wrap(err)
		}
		if n != len(r) {
			return fmt.Errorf("%s: short read from 0x%02x: %d of %d bytes", packageName, addr, n, len(r))
		}
	}
	return nil
}

// SetSpeed implements i2c.Bus. It always fails.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return ErrSpeed
}

// Close closes every handle opened by Tx.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var errs []error
	for addr, d := range b.devs {
		errs = append(errs, d.Close())
		delete(b.devs, addr)
	}
	return wrap(errors.Join(errs...))
}

var _ conni2c.BusCloser = &Bus{}
