// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// adcscope collects a burst of MAX11646/MAX11647 conversions and renders them
// as a PNG line chart.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/ed7coyne/athings-drivers/max1164x"
)

var (
	busName  = flag.String("bus", "", "I²C bus to use, the first available when empty")
	variant  = flag.String("variant", "MAX11646", "chip variant, MAX11646 or MAX11647")
	channel  = flag.Int("channel", 0, "input channel, 0 or 1")
	samples  = flag.Int("samples", 256, "number of conversions to collect")
	interval = flag.Duration("interval", 10*time.Millisecond, "delay between conversions")
	out      = flag.String("out", "adcscope.png", "output PNG path")
)

const (
	chartW    = 800
	chartH    = 480
	margin    = 48.0
	fullScale = 1023.0
)

func mainImpl() error {
	flag.Parse()
	if *samples < 2 {
		return fmt.Errorf("at least 2 samples are needed, got %d", *samples)
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	b, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer b.Close()

	dev, err := max1164x.New(b, max1164x.Variant(*variant), &max1164x.Opts{
		Scan:    max1164x.ScanInput,
		Channel: *channel,
	})
	if err != nil {
		return err
	}
	defer dev.Halt()

	collected := make([]max1164x.Sample, 0, *samples)
	t := time.NewTicker(*interval)
	defer t.Stop()
	for len(collected) < *samples {
		<-t.C
		s, err := dev.Read()
		if err != nil {
			return err
		}
		collected = append(collected, s)
	}

	supply := max1164x.MAX11646Supply
	if max1164x.Variant(*variant) == max1164x.MAX11647 {
		supply = max1164x.MAX11647Supply
	}
	if err := render(collected, supply); err != nil {
		return err
	}
	log.Printf("wrote %d samples to %s", len(collected), *out)
	return nil
}

// render draws the collected counts as a polyline inside an axis frame and
// saves the chart at the -out path.
func render(collected []max1164x.Sample, supply physic.ElectricPotential) error {
	dc := gg.NewContext(chartW, chartH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 14}))

	// Axis frame.
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, margin, margin, chartH-margin)
	dc.DrawLine(margin, chartH-margin, chartW-margin, chartH-margin)
	dc.Stroke()

	title := fmt.Sprintf("%s AIN%d, %d samples every %s", *variant, *channel, len(collected), *interval)
	tw, _ := dc.MeasureString(title)
	dc.DrawString(title, (chartW-tw)/2, margin/2)
	dc.DrawString(supply.String(), 4, margin)
	dc.DrawString("0V", 4, chartH-margin)

	// Sample trace.
	plotW := float64(chartW) - 2*margin
	plotH := float64(chartH) - 2*margin
	dc.SetRGB(0.8, 0, 0)
	for i, s := range collected {
		x := margin + plotW*float64(i)/float64(len(collected)-1)
		y := chartH - margin - plotH*float64(s.Raw)/fullScale
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	return dc.SavePNG(*out)
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("adcscope: %v", err)
	}
}
