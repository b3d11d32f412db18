// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// portwatch polls an MCP23008 port expander and renders the pin states at the
// terminal, one colored cell per pin.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ed7coyne/athings-drivers/gpioterm"
	"github.com/ed7coyne/athings-drivers/mcp23008"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	busName  = flag.String("bus", "", "I²C bus to use, the first available when empty")
	interval = flag.Duration("interval", 100*time.Millisecond, "poll interval")
	pullUp   = flag.Bool("pullup", false, "enable the internal pull up on every pin")
)

func mainImpl() error {
	flag.Parse()
	if _, err := host.Init(); err != nil {
		return err
	}
	b, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer b.Close()

	dev, err := mcp23008.New(b)
	if err != nil {
		return err
	}
	defer dev.Close()
	if *pullUp {
		for i := 0; i < 8; i++ {
			if err := dev.SetPullUp(i, true); err != nil {
				return err
			}
		}
		if err := dev.Flush(); err != nil {
			return err
		}
	}

	term := gpioterm.New(nil)
	defer term.Halt()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	t := time.NewTicker(*interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return nil
		case <-t.C:
			v, err := dev.ReadGPIO()
			if err != nil {
				return err
			}
			if err := term.Render(byte(v)); err != nil {
				return err
			}
		}
	}
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("portwatch: %v", err)
	}
}
