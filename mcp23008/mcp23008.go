// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp23008

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

const (
	// Address is the base I²C address with the three address pins tied low.
	Address i2c.Addr = 0x20

	regIODIR   byte = 0x00
	regIPOL    byte = 0x01
	regGPINTEN byte = 0x02
	regDEFVAL  byte = 0x03
	regINTCON  byte = 0x04
	regIOCON   byte = 0x05
	regGPPU    byte = 0x06
	// The live input port. Read only here, it is not an image.
	regGPIO byte = 0x09
	regOLAT byte = 0x0a

	// The chip resets with every pin an input.
	iodirDefault byte = 0xff

	// IOCON named control bits.
	ioconSeqOp     uint8 = 5
	ioconSlewRate  uint8 = 4
	ioconOpenDrain uint8 = 2
	ioconIntPol    uint8 = 1

	pinCount = 8
)

// ErrInvalidPin is returned when a pin outside 0-7 is requested.
var ErrInvalidPin = errors.New("mcp23008: pin must be 0-7")

// Direction configures a pin as input or output.
type Direction int

const (
	Input Direction = iota
	Output
)

// Polarity configures whether an input pin reads inverted.
type Polarity int

const (
	Normal Polarity = iota
	Negated
)

// CompareTarget configures what an interrupt on change compares the pin
// against: its previous value, or the configured default value.
type CompareTarget int

const (
	ComparePrevious CompareTarget = iota
	CompareDefault
)

// register is the buffered image of one 8-bit device register.
type register struct {
	addr  byte
	value byte
}

func (r *register) setBit(bit uint8, set bool) {
	if set {
		r.value |= 1 << bit
	} else {
		r.value &= ^(1 << bit)
	}
}

func (r *register) getBit(bit uint8) bool {
	return r.value&(1<<bit) != 0
}

// Values is an immutable snapshot of the live input port.
type Values byte

// Pin returns the sampled level of the specified pin. Pins outside 0-7 read
// false.
func (v Values) Pin(pin int) bool {
	if pin < 0 || pin >= pinCount {
		return false
	}
	return v&(1<<uint(pin)) != 0
}

func (v Values) String() string {
	return fmt.Sprintf("Values{%08b}", byte(v))
}

// Dev represents an MCP23008 port expander.
type Dev struct {
	d i2c.Dev

	// Pins exposes each expander pin as a gpio.PinIO. The pins are registered
	// with gpioreg under the name MCP23008_<addr>_GP<n>.
	Pins []gpio.PinIO

	iodir   register
	ipol    register
	gpinten register
	defval  register
	intcon  register
	iocon   register
	gppu    register
	olat    register
}

// reset restores every buffered register image to its chip reset value.
func (d *Dev) reset() {
	d.iodir = register{addr: regIODIR, value: iodirDefault}
	d.ipol = register{addr: regIPOL}
	d.gpinten = register{addr: regGPINTEN}
	d.defval = register{addr: regDEFVAL}
	d.intcon = register{addr: regINTCON}
	d.iocon = register{addr: regIOCON}
	d.gppu = register{addr: regGPPU}
	d.olat = register{addr: regOLAT}
}

// New returns a device on the specified bus with every buffered register at
// its chip reset value, written out before returning.
func New(bus i2c.Bus) (*Dev, error) {
	d := &Dev{d: i2c.Dev{Bus: bus, Addr: uint16(Address)}}
	d.reset()
	if err := d.Flush(); err != nil {
		return nil, err
	}
	name := d.String()
	d.Pins = make([]gpio.PinIO, pinCount)
	for i := 0; i < pinCount; i++ {
		p := &mcpPin{dev: d, number: i, name: fmt.Sprintf("%s_GP%d", name, i)}
		d.Pins[i] = p
		// Ignore registration failure.
		_ = gpioreg.Register(p)
	}
	return d, nil
}

// registers returns the images in ascending register address order, the
// order Flush writes them.
func (d *Dev) registers() []*register {
	return []*register{&d.iodir, &d.ipol, &d.gpinten, &d.defval, &d.intcon, &d.iocon, &d.gppu, &d.olat}
}

func (d *Dev) writeRegister(r *register) error {
	if err := d.d.Tx([]byte{r.addr, r.value}, nil); err != nil {
		return fmt.Errorf("mcp23008: %w", err)
	}
	return nil
}

// setAndWrite updates one image bit and writes the register out if the image
// changed.
func (d *Dev) setAndWrite(r *register, bit uint8, set bool) error {
	old := r.value
	r.setBit(bit, set)
	if r.value == old {
		return nil
	}
	return d.writeRegister(r)
}

// Flush writes every buffered register to the device, one register-indexed
// write each, in ascending register address order. It can be called any
// number of times to apply setter changes.
func (d *Dev) Flush() error {
	for _, r := range d.registers() {
		if err := d.writeRegister(r); err != nil {
			return err
		}
	}
	return nil
}

// ReadGPIO reads the live input port and returns it as an immutable
// snapshot.
func (d *Dev) ReadGPIO() (Values, error) {
	r := make([]byte, 1)
	if err := d.d.Tx([]byte{regGPIO}, r); err != nil {
		return 0, fmt.Errorf("mcp23008: %w", err)
	}
	return Values(r[0]), nil
}

func checkPin(pin int) error {
	if pin < 0 || pin >= pinCount {
		return ErrInvalidPin
	}
	return nil
}

// SetDirection configures a pin as input or output. Takes effect at the next
// Flush.
func (d *Dev) SetDirection(pin int, dir Direction) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	d.iodir.setBit(uint8(pin), dir == Input)
	return nil
}

// SetPolarity configures whether an input pin reads inverted. Takes effect
// at the next Flush.
func (d *Dev) SetPolarity(pin int, pol Polarity) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	d.ipol.setBit(uint8(pin), pol == Negated)
	return nil
}

// SetInterruptOnChange enables interrupt on change for a pin. Takes effect
// at the next Flush.
func (d *Dev) SetInterruptOnChange(pin int, enabled bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	d.gpinten.setBit(uint8(pin), enabled)
	return nil
}

// SetDefaultValue sets the level an interrupt on change compares against
// when the pin's compare target is CompareDefault. Takes effect at the next
// Flush.
func (d *Dev) SetDefaultValue(pin int, l gpio.Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	d.defval.setBit(uint8(pin), l == gpio.High)
	return nil
}

// SetCompareTarget sets what an interrupt on change compares the pin
// against. Takes effect at the next Flush.
func (d *Dev) SetCompareTarget(pin int, target CompareTarget) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	d.intcon.setBit(uint8(pin), target == CompareDefault)
	return nil
}

// SetPullUp enables the 100kΩ pull-up on an input pin. Takes effect at the
// next Flush.
func (d *Dev) SetPullUp(pin int, enabled bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	d.gppu.setBit(uint8(pin), enabled)
	return nil
}

// SetOutput sets the output latch level for a pin. Takes effect at the next
// Flush.
func (d *Dev) SetOutput(pin int, l gpio.Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	d.olat.setBit(uint8(pin), l == gpio.High)
	return nil
}

// SetSequentialOp sets the IOCON sequential operation bit. Takes effect at
// the next Flush.
func (d *Dev) SetSequentialOp(enabled bool) {
	d.iocon.setBit(ioconSeqOp, enabled)
}

// SetSlewRateControl sets the IOCON SDA slew rate bit. Takes effect at the
// next Flush.
func (d *Dev) SetSlewRateControl(enabled bool) {
	d.iocon.setBit(ioconSlewRate, enabled)
}

// SetInterruptOpenDrain configures the INT pin as open drain. Overrides the
// configured polarity. Takes effect at the next Flush.
func (d *Dev) SetInterruptOpenDrain(enabled bool) {
	d.iocon.setBit(ioconOpenDrain, enabled)
}

// SetInterruptActiveHigh configures the INT pin as active high. Takes effect
// at the next Flush.
func (d *Dev) SetInterruptActiveHigh(enabled bool) {
	d.iocon.setBit(ioconIntPol, enabled)
}

// Halt restores every buffered register to its chip reset value and writes
// them out, leaving all pins high impedance inputs. Implements
// conn.Resource.
func (d *Dev) Halt() error {
	d.reset()
	return d.Flush()
}

// Close unregisters the device's pins from gpioreg.
func (d *Dev) Close() error {
	for _, p := range d.Pins {
		if err := gpioreg.Unregister(p.Name()); err != nil {
			return err
		}
	}
	d.Pins = nil
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("MCP23008_%x", d.d.Addr)
}

var _ conn.Resource = &Dev{}
