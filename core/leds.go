package core

import "errors"

// Number of LEDs in the exclusive selector (LED 1..3)
const SelectorLEDs = 3

var ErrInvalidLED = errors.New("invalid LED id")

// LEDBank tracks the four panel LEDs and writes every change through to
// the GPIO driver. LEDs 1-3 form an exclusive selector, LED 4 is the alert LED.
type LEDBank struct {
	gpio   GPIODriver
	pins   [NumLEDs]GPIOPin
	states [NumLEDs]bool
}

// NewLEDBank configures the LED pins as outputs and turns them all off
func NewLEDBank(gpio GPIODriver, cfg PanelConfig) (*LEDBank, error) {
	bank := &LEDBank{
		gpio: gpio,
		pins: cfg.LEDPins,
	}
	for _, pin := range cfg.LEDPins {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return nil, err
		}
		if err := gpio.SetPin(pin, false); err != nil {
			return nil, err
		}
	}
	return bank, nil
}

// Set drives LED id (1-based) high or low
func (lb *LEDBank) Set(id int, on bool) error {
	if id < 1 || id > NumLEDs {
		return ErrInvalidLED
	}
	if err := lb.gpio.SetPin(lb.pins[id-1], on); err != nil {
		return err
	}
	lb.states[id-1] = on
	return nil
}

// Get returns the last written state of LED id
func (lb *LEDBank) Get(id int) bool {
	if id < 1 || id > NumLEDs {
		return false
	}
	return lb.states[id-1]
}

// Toggle inverts LED id
func (lb *LEDBank) Toggle(id int) error {
	return lb.Set(id, !lb.Get(id))
}

// Select clears the selector LEDs and lights LED id
func (lb *LEDBank) Select(id int) error {
	if id < 1 || id > SelectorLEDs {
		return ErrInvalidLED
	}
	for i := 1; i <= SelectorLEDs; i++ {
		if err := lb.Set(i, false); err != nil {
			return err
		}
	}
	return lb.Set(id, true)
}

// Selected returns the lit selector LED, or 0 when none is lit
func (lb *LEDBank) Selected() int {
	for i := 1; i <= SelectorLEDs; i++ {
		if lb.states[i-1] {
			return i
		}
	}
	return 0
}

// States returns a snapshot of all LED states, index i is LED i+1
func (lb *LEDBank) States() [NumLEDs]bool {
	return lb.states
}
