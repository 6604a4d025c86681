//go:build linux && !tinygo

// Command panelfw-linux runs the panel controller on a Linux board, with
// buttons and LEDs on GPIO character-device lines and the host link on a
// serial tty.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"panelfw/core"
	"panelfw/host/serial"
)

var (
	chip      = flag.String("chip", "gpiochip0", "GPIO chip name")
	device    = flag.String("device", "/dev/ttyGS0", "Serial device for the host link")
	baud      = flag.Int("baud", 9600, "Baud rate")
	ledPins   = flag.String("leds", "18,19,20,21", "LED line offsets (LED1..LED4)")
	buttonPin = flag.String("buttons", "10,11,12,13", "Button line offsets (button 1..4)")
	logLevel  = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	trace     = flag.Bool("trace", false, "Dump the controller trace on exit")
)

func main() {
	flag.Parse()

	logger := newLogger(*logLevel)
	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("Panel stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

func buildConfig() (core.PanelConfig, error) {
	cfg := core.DefaultConfig()
	cfg.Baud = uint32(*baud)

	leds, err := core.ParsePins(*ledPins, core.NumLEDs)
	if err != nil {
		return cfg, fmt.Errorf("-leds: %w", err)
	}
	copy(cfg.LEDPins[:], leds)

	buttons, err := core.ParsePins(*buttonPin, core.NumButtons)
	if err != nil {
		return cfg, fmt.Errorf("-buttons: %w", err)
	}
	copy(cfg.ButtonPins[:], buttons)

	return cfg, cfg.Validate()
}

func run(logger zerolog.Logger) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	gpio := NewCdevGPIODriver(*chip)
	defer func() {
		if err := gpio.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to release GPIO lines")
		}
	}()

	port, err := serial.Open(&serial.Config{
		Device:      *device,
		Baud:        int(cfg.Baud),
		ReadTimeout: 100,
	})
	if err != nil {
		return err
	}
	link := newSerialLink(port, logger)
	link.start()
	defer func() {
		if err := link.close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close serial port")
		}
	}()

	start := time.Now()
	clock := core.ClockFunc(func() uint32 {
		return uint32(time.Since(start).Milliseconds())
	})

	controller, err := core.NewController(cfg, gpio, link, clock)
	if err != nil {
		return err
	}

	ctlLog := logger.With().Str("module", "controller").Logger()
	controller.SetDebugWriter(func(msg string) {
		ctlLog.Debug().Msg(msg)
	})

	logger.Info().
		Str("chip", *chip).
		Str("device", *device).
		Uint32("baud", cfg.Baud).
		Msg("Panel ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stats := controller.Stats()
			logger.Info().
				Uint32("commands", stats.CommandsApplied).
				Uint32("discarded", stats.LinesDiscarded).
				Uint32("emitted", stats.EventsEmitted).
				Uint32("suppressed", stats.EventsSuppressed).
				Uint32("overruns", link.overruns.Load()).
				Msg("Shutting down")
			if *trace {
				controller.SetDebugWriter(func(msg string) {
					ctlLog.Info().Msg(msg)
				})
				controller.DumpTrace()
			}
			return nil
		case <-ticker.C:
			controller.Step()
		}
	}
}
