package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Number of buttons and LEDs on the panel
const (
	NumButtons = 4
	NumLEDs    = 4
)

// AlertLED is the 1-based id of the LED that button 4 toggles and that
// blinks while the panel is disabled.
const AlertLED = 4

// Defaults of the stock panel wiring
const (
	DefaultBaud          = 9600
	DefaultBlinkInterval = 500 * time.Millisecond
	DefaultDebounceDelay = 20 * time.Millisecond
	DefaultClickDelay    = 500 * time.Millisecond
	DefaultLineTimeout   = 1000 * time.Millisecond
	DefaultMaxLineLength = 64
)

var (
	ErrDuplicatePin    = errors.New("pin assigned to more than one role")
	ErrInvalidInterval = errors.New("interval must be positive")
	ErrInvalidLimit    = errors.New("line length limit must be positive")
	ErrPinCount        = errors.New("wrong number of pins")
)

// PinRole is the function a GPIO pin serves on the panel
type PinRole uint8

const (
	RoleNone PinRole = iota
	RoleLED
	RoleButton
	RoleStatusPixel
)

func (r PinRole) String() string {
	switch r {
	case RoleLED:
		return "led"
	case RoleButton:
		return "button"
	case RoleStatusPixel:
		return "status_pixel"
	default:
		return "none"
	}
}

// PanelConfig holds the pin-to-role mapping and timing of the panel.
// Index i of LEDPins and ButtonPins belongs to LED/button id i+1.
type PanelConfig struct {
	LEDPins    [NumLEDs]GPIOPin
	ButtonPins [NumButtons]GPIOPin

	// StatusPixel is an optional WS2812 pin mirroring the LED bank (0 = none)
	StatusPixel GPIOPin

	Baud          uint32
	BlinkInterval time.Duration // Alert LED half period while disabled
	DebounceDelay time.Duration // Stable time before a level change is accepted
	ClickDelay    time.Duration // Minimum spacing between accepted button events
	LineTimeout   time.Duration // Idle time after which a partial line is taken as complete
	MaxLineLength int           // Longer inbound lines are discarded
}

// DefaultConfig returns the stock panel configuration:
// LEDs on GPIO18-21, buttons on GPIO10-13 (pull-down, active high).
func DefaultConfig() PanelConfig {
	return PanelConfig{
		LEDPins:       [NumLEDs]GPIOPin{18, 19, 20, 21},
		ButtonPins:    [NumButtons]GPIOPin{10, 11, 12, 13},
		Baud:          DefaultBaud,
		BlinkInterval: DefaultBlinkInterval,
		DebounceDelay: DefaultDebounceDelay,
		ClickDelay:    DefaultClickDelay,
		LineTimeout:   DefaultLineTimeout,
		MaxLineLength: DefaultMaxLineLength,
	}
}

// WithDefaults returns a copy with zero-valued settings replaced by defaults.
// Pin assignments are left as they are.
func (c PanelConfig) WithDefaults() PanelConfig {
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.BlinkInterval == 0 {
		c.BlinkInterval = DefaultBlinkInterval
	}
	if c.DebounceDelay == 0 {
		c.DebounceDelay = DefaultDebounceDelay
	}
	if c.ClickDelay == 0 {
		c.ClickDelay = DefaultClickDelay
	}
	if c.LineTimeout == 0 {
		c.LineTimeout = DefaultLineTimeout
	}
	if c.MaxLineLength == 0 {
		c.MaxLineLength = DefaultMaxLineLength
	}
	return c
}

// Validate checks that every pin has a single role and that the timing
// settings are usable.
func (c PanelConfig) Validate() error {
	seen := make(map[GPIOPin]PinRole, NumLEDs+NumButtons+1)
	claim := func(pin GPIOPin, role PinRole) error {
		if prev, ok := seen[pin]; ok {
			return &PinError{Pin: pin, Role: role, Prev: prev}
		}
		seen[pin] = role
		return nil
	}

	for _, pin := range c.LEDPins {
		if err := claim(pin, RoleLED); err != nil {
			return err
		}
	}
	for _, pin := range c.ButtonPins {
		if err := claim(pin, RoleButton); err != nil {
			return err
		}
	}
	if c.StatusPixel != 0 {
		if err := claim(c.StatusPixel, RoleStatusPixel); err != nil {
			return err
		}
	}

	if c.BlinkInterval <= 0 || c.DebounceDelay < 0 || c.ClickDelay < 0 || c.LineTimeout <= 0 {
		return ErrInvalidInterval
	}
	if c.MaxLineLength <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// Role returns the role assigned to pin
func (c PanelConfig) Role(pin GPIOPin) PinRole {
	for _, p := range c.LEDPins {
		if p == pin {
			return RoleLED
		}
	}
	for _, p := range c.ButtonPins {
		if p == pin {
			return RoleButton
		}
	}
	if c.StatusPixel != 0 && c.StatusPixel == pin {
		return RoleStatusPixel
	}
	return RoleNone
}

// WithStatusPixel returns a copy with the status pixel on the pin named by
// s, a decimal GPIO number. An empty s leaves the config unchanged.
func (c PanelConfig) WithStatusPixel(s string) (PanelConfig, error) {
	if strings.TrimSpace(s) == "" {
		return c, nil
	}
	pins, err := ParsePins(s, 1)
	if err != nil {
		return c, err
	}
	c.StatusPixel = pins[0]
	return c, c.Validate()
}

// PinError reports a pin claimed by two roles
type PinError struct {
	Pin  GPIOPin
	Role PinRole
	Prev PinRole
}

func (e *PinError) Error() string {
	return "gpio" + itoa(int(e.Pin)) + ": " + e.Role.String() + " conflicts with " + e.Prev.String()
}

func (e *PinError) Unwrap() error {
	return ErrDuplicatePin
}

// ParsePins parses a comma separated list of exactly n GPIO numbers,
// e.g. "18,19,20,21"
func ParsePins(s string, n int) ([]GPIOPin, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, ErrPinCount
	}
	pins := make([]GPIOPin, n)
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		pins[i] = GPIOPin(v)
	}
	return pins, nil
}
