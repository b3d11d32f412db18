// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package athingsdrivers is a container for I²C peripheral drivers ported
// from the Android Things contrib-drivers collection.
package athingsdrivers
