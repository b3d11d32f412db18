// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// mcpPin exposes one expander pin as a gpio.PinIO. Pin operations write the
// affected registers through to the device immediately.
type mcpPin struct {
	dev    *Dev
	number int
	name   string
}

func (p *mcpPin) String() string {
	return p.name
}

func (p *mcpPin) Name() string {
	return p.name
}

func (p *mcpPin) Number() int {
	return p.number
}

func (p *mcpPin) Function() string {
	if p.dev.iodir.getBit(uint8(p.number)) {
		return string(gpio.IN)
	}
	return string(gpio.OUT)
}

// Halt floats the pin by making it a high impedance input.
func (p *mcpPin) Halt() error {
	return p.In(gpio.Float, gpio.NoEdge)
}

func (p *mcpPin) In(pull gpio.Pull, edge gpio.Edge) error {
	// The INT output is not wired up, edges would never be observed.
	if edge != gpio.NoEdge {
		return errors.New("mcp23008: edge detection is not supported")
	}

	switch pull {
	case gpio.PullUp:
		if err := p.dev.setAndWrite(&p.dev.gppu, uint8(p.number), true); err != nil {
			return err
		}
	case gpio.Float:
		if err := p.dev.setAndWrite(&p.dev.gppu, uint8(p.number), false); err != nil {
			return err
		}
	case gpio.PullDown:
		return errors.New("mcp23008: PullDown is not supported")
	case gpio.PullNoChange:
	}

	return p.dev.setAndWrite(&p.dev.iodir, uint8(p.number), true)
}

// Read samples the live input port.
func (p *mcpPin) Read() gpio.Level {
	v, _ := p.dev.ReadGPIO()
	return gpio.Level(v.Pin(p.number))
}

func (p *mcpPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *mcpPin) Pull() gpio.Pull {
	if p.dev.gppu.getBit(uint8(p.number)) {
		return gpio.PullUp
	}
	return gpio.Float
}

func (p *mcpPin) DefaultPull() gpio.Pull {
	return gpio.Float
}

func (p *mcpPin) Out(l gpio.Level) error {
	if err := p.dev.setAndWrite(&p.dev.iodir, uint8(p.number), false); err != nil {
		return err
	}
	return p.dev.setAndWrite(&p.dev.olat, uint8(p.number), l == gpio.High)
}

func (p *mcpPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("mcp23008: PWM is not supported")
}

var _ gpio.PinIO = &mcpPin{}
