// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mcp23008 controls a Microchip MCP23008 8-bit I²C GPIO port
// expander.
//
// The device holds its configuration in eight registers: direction, input
// polarity, interrupt on change enable, interrupt default compare value,
// interrupt compare target, device control, pull-up enable and the output
// latch. The driver buffers an image of each register in memory; setters
// mutate the images and Flush writes them all out. The live input port is
// read with ReadGPIO, which returns an immutable per-pin snapshot.
//
// Each expander pin is also exposed as a gpio.PinIO through Dev.Pins and
// registered with gpioreg. Unlike the buffered setter API, pin operations
// write through to the device immediately.
//
// The interrupt registers are written but the INT output pin is not
// monitored; wire it to a host GPIO with edge detection if you need it.
//
// The driver holds no locks. Serialize access externally if the device is
// shared between goroutines.
//
// # Datasheet
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/21919e.pdf
package mcp23008
