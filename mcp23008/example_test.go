// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008_test

import (
	"log"
	"time"

	"github.com/ed7coyne/athings-drivers/mcp23008"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Example configuring GP0 as a pulled-up button input and GP7 as an LED
// output, then mirroring the button on the LED.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := mcp23008.New(bus)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	if err := dev.SetPullUp(0, true); err != nil {
		log.Fatal(err)
	}
	if err := dev.SetDirection(7, mcp23008.Output); err != nil {
		log.Fatal(err)
	}
	if err := dev.Flush(); err != nil {
		log.Fatal(err)
	}

	for {
		v, err := dev.ReadGPIO()
		if err != nil {
			log.Fatal(err)
		}
		// The button pulls the pin low when pressed.
		if err := dev.Pins[7].Out(gpio.Level(!v.Pin(0))); err != nil {
			log.Fatal(err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}
