// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reboot_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/reboot/is31fl3730/is31fl3730sim"
	"github.com/GermanBionicSystems/reboot/reboot"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	b, err := reboot.New(bus, &reboot.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer b.Halt()

	if err := b.WriteText(4, "1234"); err != nil {
		log.Fatal(err)
	}
	if err := b.WriteRandom(6); err != nil {
		log.Fatal(err)
	}
	if err := b.SetBrightness(6, 25); err != nil {
		log.Fatal(err)
	}
}

func Example_simulated() {
	bus := is31fl3730sim.NewBus()
	four := bus.Add(reboot.FourDigit.Addr(), reboot.FourDigit.Digits())
	six := bus.Add(reboot.SixDigit.Addr(), reboot.SixDigit.Digits())

	b, err := reboot.New(bus, &reboot.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	if err := b.WriteText(4, "42"); err != nil {
		log.Fatal(err)
	}
	if err := b.WriteText(6, "1234567"); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%q %s\n", four.Text(), four.Current())
	fmt.Printf("%q %s\n", six.Text(), six.Current())
	// Output:
	// "42  " 20mA
	// "123456" 20mA
}
