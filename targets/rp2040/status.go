//go:build rp2040 || rp2350

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"panelfw/core"
)

// Colours shown on the status pixel
var (
	colorOff   = color.RGBA{}
	colorAlert = color.RGBA{R: 0x40}
	colorLED1  = color.RGBA{G: 0x30}
	colorLED2  = color.RGBA{B: 0x30}
	colorLED3  = color.RGBA{R: 0x20, G: 0x20}
)

// StatusPixel mirrors the LED bank on a single WS2812 pixel: red while the
// alert LED is lit, otherwise the colour of the selected channel.
type StatusPixel struct {
	dev  ws2812.Device
	last [core.NumLEDs]bool
	init bool
}

// NewStatusPixel configures pin for a WS2812 pixel
func NewStatusPixel(pin core.GPIOPin) *StatusPixel {
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &StatusPixel{dev: ws2812.New(p)}
}

// Update redraws the pixel when the LED states changed
func (s *StatusPixel) Update(leds [core.NumLEDs]bool) {
	if s.init && leds == s.last {
		return
	}
	s.last = leds
	s.init = true
	_ = s.dev.WriteColors([]color.RGBA{pixelColor(leds)})
}

func pixelColor(leds [core.NumLEDs]bool) color.RGBA {
	switch {
	case leds[core.AlertLED-1]:
		return colorAlert
	case leds[0]:
		return colorLED1
	case leds[1]:
		return colorLED2
	case leds[2]:
		return colorLED3
	default:
		return colorOff
	}
}
