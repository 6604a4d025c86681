//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"panelfw/core"
)

// statusPixelPin is the WS2812 status pixel GPIO, set at link time:
//
//	tinygo flash -target=pico -ldflags="-X main.statusPixelPin=16" ./targets/rp2040
//
// Left empty, the firmware runs without a status pixel.
var statusPixelPin string

func main() {
	InitDebugUART()

	cfg, err := core.DefaultConfig().WithStatusPixel(statusPixelPin)
	if err != nil {
		DebugPrintln("status pixel pin " + statusPixelPin + ": " + err.Error())
		cfg = core.DefaultConfig()
	}

	if err := InitUSB(cfg.Baud); err != nil {
		fatalBlink()
	}

	controller, err := core.NewController(cfg, NewRPGPIODriver(), usbPort{}, hardwareClock)
	if err != nil {
		DebugPrintln("config error: " + err.Error())
		fatalBlink()
	}
	controller.SetDebugWriter(DebugPrintln)

	var pixel *StatusPixel
	if cfg.StatusPixel != 0 {
		pixel = NewStatusPixel(cfg.StatusPixel)
	}

	DebugPrintln("panel ready")

	// Main loop - start immediately
	controller.Run(func() {
		if pixel != nil {
			pixel.Update(controller.LEDs())
		}
		// Yield to the USB stack
		time.Sleep(100 * time.Microsecond)
	})
}

// fatalBlink flashes the board LED rapidly forever to indicate a setup error
func fatalBlink() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
