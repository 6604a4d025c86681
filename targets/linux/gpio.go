//go:build linux && !tinygo

package main

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"panelfw/core"
)

const consumer = "panelfw"

// CdevGPIODriver implements core.GPIODriver on the Linux GPIO character
// device. Pin numbers are line offsets on a single chip.
type CdevGPIODriver struct {
	chip  string
	lines map[core.GPIOPin]*gpiocdev.Line
}

// NewCdevGPIODriver creates a driver for chip, e.g. "gpiochip0"
func NewCdevGPIODriver(chip string) *CdevGPIODriver {
	return &CdevGPIODriver{
		chip:  chip,
		lines: make(map[core.GPIOPin]*gpiocdev.Line),
	}
}

// ConfigureOutput requests the line as an output driven low
func (d *CdevGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	return d.request(pin, gpiocdev.AsOutput(0))
}

// ConfigureInputPullUp requests the line as an input with pull-up bias
func (d *CdevGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.request(pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
}

// ConfigureInputPullDown requests the line as an input with pull-down bias
func (d *CdevGPIODriver) ConfigureInputPullDown(pin core.GPIOPin) error {
	return d.request(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
}

func (d *CdevGPIODriver) request(pin core.GPIOPin, opts ...gpiocdev.LineReqOption) error {
	if _, exists := d.lines[pin]; exists {
		// Already configured, this is OK
		return nil
	}

	opts = append(opts, gpiocdev.WithConsumer(consumer))
	line, err := gpiocdev.RequestLine(d.chip, int(pin), opts...)
	if err != nil {
		return fmt.Errorf("failed to request %s line %d: %w", d.chip, pin, err)
	}
	d.lines[pin] = line
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *CdevGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	line, exists := d.lines[pin]
	if !exists {
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		line = d.lines[pin]
	}

	v := 0
	if value {
		v = 1
	}
	return line.SetValue(v)
}

// GetPin reads the current pin state
func (d *CdevGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	line, exists := d.lines[pin]
	if !exists {
		return false, nil
	}
	v, err := line.Value()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadPin is GetPin without the error
func (d *CdevGPIODriver) ReadPin(pin core.GPIOPin) bool {
	value, _ := d.GetPin(pin)
	return value
}

// Close releases every requested line
func (d *CdevGPIODriver) Close() error {
	var errs []error
	for pin, line := range d.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(d.lines, pin)
	}
	return errors.Join(errs...)
}
