// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package max1164x

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Variant represents the model of the device.
type Variant string

const (
	MAX11646 Variant = "MAX11646"
	MAX11647 Variant = "MAX11647"

	// Full scale supply and internal reference potentials for each variant.
	MAX11646Supply      physic.ElectricPotential = 5 * physic.Volt
	MAX11646InternalRef physic.ElectricPotential = 4096 * physic.MilliVolt
	MAX11647Supply      physic.ElectricPotential = 3 * physic.Volt
	MAX11647InternalRef physic.ElectricPotential = 2048 * physic.MilliVolt

	// Address is the only I²C address the parts respond to. It is fixed in
	// hardware, there are no address pins.
	Address i2c.Addr = 0x36

	stepCount = 1 << 10 // 10-bit A/D
	maxCount  = stepCount - 1

	// The setup byte is discriminated from the configuration byte by bit 7.
	setupMarker   byte = 0x80
	setupResetBit byte = 0x02

	channelBit byte   = 0x02
	sampleMask uint16 = 0x3ff
)

var (
	errInvalidVariant = errors.New("max1164x: invalid variant")

	// ErrInvalidChannel is returned when a channel outside 0..1 is requested.
	// The parts have exactly two inputs, zero indexed.
	ErrInvalidChannel = errors.New("max1164x: channel must be 0 or 1")

	// ErrOpenCircuit is returned by Sample.Resistance for a zero sample, where
	// the divider formula has no finite result.
	ErrOpenCircuit = errors.New("max1164x: resistance is unbounded for a zero sample")
)

// ReferenceVoltage selects the conversion reference. The values are the
// exact bit patterns of setup byte bits 6:4.
type ReferenceVoltage byte

const (
	// RefVDD uses the positive supply as the reference.
	RefVDD ReferenceVoltage = 0x00
	// RefExternal uses an external reference applied at the REF pin.
	RefExternal ReferenceVoltage = 0x20
	// RefInternalOff selects the internal reference, powered down.
	RefInternalOff ReferenceVoltage = 0x40
	// RefInternalOn selects the internal reference, always powered.
	RefInternalOn ReferenceVoltage = 0x50
	// RefOutputOff drives the internal reference out on the REF pin, powered
	// down.
	RefOutputOff ReferenceVoltage = 0x60
	// RefOutputOn drives the internal reference out on the REF pin, always
	// powered.
	RefOutputOn ReferenceVoltage = 0x70
)

// Clock selects the conversion clock source, setup byte bit 3.
type Clock byte

const (
	ClockInternal Clock = 0x00
	ClockExternal Clock = 0x08
)

// Polarity selects unipolar or bipolar conversion, setup byte bit 2.
type Polarity byte

const (
	Unipolar Polarity = 0x00
	Bipolar  Polarity = 0x04
)

// ScanMode selects how the channel sequencer runs a conversion, configuration
// byte bits 6:5.
type ScanMode byte

const (
	// ScanFromZero converts from AIN0 up to the selected channel.
	ScanFromZero ScanMode = 0x00
	// ScanInput8x converts the selected channel eight times.
	ScanInput8x ScanMode = 0x20
	// ScanInput converts the selected channel once.
	ScanInput ScanMode = 0x60
)

// MeasurementMode selects single ended or differential conversion,
// configuration byte bit 0.
type MeasurementMode byte

const (
	SingleEnded  MeasurementMode = 0x00
	Differential MeasurementMode = 0x01
)

// Opts holds the initial device configuration. The zero value matches the
// chip's power on defaults.
type Opts struct {
	Reference ReferenceVoltage
	Clock     Clock
	Polarity  Polarity
	// ResetConfig sets the setup byte reset bit.
	ResetConfig bool
	Scan        ScanMode
	// Channel is the input the sequencer targets, 0 or 1.
	Channel int
	Mode    MeasurementMode
}

// DefaultOpts is the recommended default options: VDD reference, internal
// clock, unipolar, single ended conversion of channel 0.
var DefaultOpts = Opts{}

// Dev represents a MAX11646/MAX11647 A/D converter.
type Dev struct {
	d           i2c.Dev
	variant     Variant
	supply      physic.ElectricPotential
	internalRef physic.ElectricPotential

	reference   ReferenceVoltage
	clock       Clock
	polarity    Polarity
	resetConfig bool
	scan        ScanMode
	channel     int
	mode        MeasurementMode
}

// New returns a device configured per opts using the specified bus. The
// device address is fixed. If opts is nil, DefaultOpts is used.
//
// The buffered setup and configuration bytes are written to the device
// before returning.
func New(bus i2c.Bus, variant Variant, opts *Opts) (*Dev, error) {
	if variant != MAX11646 && variant != MAX11647 {
		return nil, errInvalidVariant
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Channel < 0 || opts.Channel > 1 {
		return nil, ErrInvalidChannel
	}
	d := &Dev{
		d:           i2c.Dev{Bus: bus, Addr: uint16(Address)},
		variant:     variant,
		supply:      MAX11646Supply,
		internalRef: MAX11646InternalRef,
		reference:   opts.Reference,
		clock:       opts.Clock,
		polarity:    opts.Polarity,
		resetConfig: opts.ResetConfig,
		scan:        opts.Scan,
		channel:     opts.Channel,
		mode:        opts.Mode,
	}
	if variant == MAX11647 {
		d.supply = MAX11647Supply
		d.internalRef = MAX11647InternalRef
	}
	if err := d.Flush(); err != nil {
		return nil, err
	}
	return d, nil
}

// setupByte encodes the setup register from the current fields.
func (d *Dev) setupByte() byte {
	b := setupMarker | byte(d.reference) | byte(d.clock) | byte(d.polarity)
	if d.resetConfig {
		b |= setupResetBit
	}
	return b
}

// configByte encodes the configuration register from the current fields. The
// channel is validated before it is stored, so only bit 1 can be set here.
func (d *Dev) configByte() byte {
	b := byte(d.scan) | byte(d.mode)
	if d.channel == 1 {
		b |= channelBit
	}
	return b
}

// Flush writes the buffered setup and configuration bytes to the device as a
// single two byte transaction. It can be called any number of times to apply
// setter changes.
func (d *Dev) Flush() error {
	if err := d.d.Tx([]byte{d.setupByte(), d.configByte()}, nil); err != nil {
		return fmt.Errorf("max1164x: %w", err)
	}
	return nil
}

// SetReference selects the conversion reference. Takes effect at the next
// Flush.
func (d *Dev) SetReference(ref ReferenceVoltage) {
	d.reference = ref
}

// SetClock selects the conversion clock source. Takes effect at the next
// Flush.
func (d *Dev) SetClock(clock Clock) {
	d.clock = clock
}

// SetPolarity selects unipolar or bipolar conversion. Takes effect at the
// next Flush.
func (d *Dev) SetPolarity(polarity Polarity) {
	d.polarity = polarity
}

// SetScanMode selects the channel sequencer mode. Takes effect at the next
// Flush.
func (d *Dev) SetScanMode(scan ScanMode) {
	d.scan = scan
}

// SetMode selects single ended or differential conversion. Takes effect at
// the next Flush.
func (d *Dev) SetMode(mode MeasurementMode) {
	d.mode = mode
}

// SetChannel selects the input channel, 0 or 1. Any other value returns
// ErrInvalidChannel and leaves the configuration untouched. Takes effect at
// the next Flush.
func (d *Dev) SetChannel(channel int) error {
	if channel < 0 || channel > 1 {
		return ErrInvalidChannel
	}
	d.channel = channel
	return nil
}

// Read performs a single conversion and returns the sample. Only the bottom
// 10 bits of the result word are valid, the rest are discarded.
func (d *Dev) Read() (Sample, error) {
	r := make([]byte, 2)
	if err := d.d.Tx(nil, r); err != nil {
		return Sample{}, fmt.Errorf("max1164x: %w", err)
	}
	raw := (uint16(r[0])<<8 | uint16(r[1])) & sampleMask
	return Sample{Raw: raw, scale: d.supply}, nil
}

// ReadVoltage performs a single conversion and returns the result scaled to
// the variant's supply voltage.
func (d *Dev) ReadVoltage() (physic.ElectricPotential, error) {
	s, err := d.Read()
	if err != nil {
		return 0, err
	}
	return s.Voltage(), nil
}

// ReadReference performs a single conversion and returns the result scaled to
// the variant's internal reference voltage. Only meaningful while an internal
// reference mode is selected.
func (d *Dev) ReadReference() (physic.ElectricPotential, error) {
	s, err := d.Read()
	if err != nil {
		return 0, err
	}
	return physic.ElectricPotential(int64(s.Raw) * int64(d.internalRef) / stepCount), nil
}

// Halt powers the internal reference down. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.reference = RefInternalOff
	return d.Flush()
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s: %s", d.variant, d.d.String())
}

// Sample is a single 10-bit conversion result.
type Sample struct {
	// Raw is the masked device count, 0-1023.
	Raw   uint16
	scale physic.ElectricPotential
}

// Voltage returns the sample scaled to the variant's supply voltage,
// raw * supply / 1024.
func (s Sample) Voltage() physic.ElectricPotential {
	return physic.ElectricPotential(int64(s.Raw) * int64(s.scale) / stepCount)
}

// Resistance interprets the sample as the mid point of a divider against a
// known resistor and returns the unknown leg, known * (1023/raw - 1). A zero
// sample has no finite solution and returns ErrOpenCircuit.
func (s Sample) Resistance(known physic.ElectricResistance) (physic.ElectricResistance, error) {
	if s.Raw == 0 {
		return 0, ErrOpenCircuit
	}
	return physic.ElectricResistance(float64(known) * (maxCount/float64(s.Raw) - 1)), nil
}

var _ conn.Resource = &Dev{}
