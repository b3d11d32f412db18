// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package max1164x controls a Maxim MAX11646 or MAX11647 analog to digital
// converter over I²C.
//
// The two parts are identical 10-bit, 2-channel converters and differ only in
// supply range: the MAX11646 is the 5V part, the MAX11647 the 3V part. Each
// carries an internal voltage reference (4.096V and 2.048V respectively).
//
// The device is configured through two command bytes, setup and configuration,
// that are buffered in memory and written together in a single transaction.
// Setters only mutate the buffered bytes; call Flush to push changes to the
// device after construction.
//
// # Datasheet
//
// https://datasheets.maximintegrated.com/en/ds/MAX11646-MAX11647.pdf
package max1164x
