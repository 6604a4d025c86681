package core

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LEDPins != [NumLEDs]GPIOPin{18, 19, 20, 21} {
		t.Errorf("LED pins = %v", cfg.LEDPins)
	}
	if cfg.ButtonPins != [NumButtons]GPIOPin{10, 11, 12, 13} {
		t.Errorf("button pins = %v", cfg.ButtonPins)
	}
	if cfg.BlinkInterval != 500*time.Millisecond || cfg.ClickDelay != 500*time.Millisecond {
		t.Errorf("unexpected timing: blink=%v click=%v", cfg.BlinkInterval, cfg.ClickDelay)
	}
	if cfg.Baud != 9600 {
		t.Errorf("baud = %d", cfg.Baud)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestWithDefaultsKeepsPins(t *testing.T) {
	cfg := PanelConfig{
		LEDPins:    [NumLEDs]GPIOPin{2, 3, 4, 5},
		ButtonPins: [NumButtons]GPIOPin{6, 7, 8, 9},
		ClickDelay: 250 * time.Millisecond,
	}.WithDefaults()

	if cfg.LEDPins[0] != 2 || cfg.ButtonPins[3] != 9 {
		t.Error("WithDefaults changed pin assignments")
	}
	if cfg.ClickDelay != 250*time.Millisecond {
		t.Errorf("ClickDelay overwritten: %v", cfg.ClickDelay)
	}
	if cfg.BlinkInterval != DefaultBlinkInterval || cfg.MaxLineLength != DefaultMaxLineLength {
		t.Error("zero values were not defaulted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PanelConfig)
		wantErr error
	}{
		{"duplicate led", func(c *PanelConfig) { c.LEDPins[1] = c.LEDPins[0] }, ErrDuplicatePin},
		{"button on led pin", func(c *PanelConfig) { c.ButtonPins[2] = c.LEDPins[3] }, ErrDuplicatePin},
		{"status pixel clash", func(c *PanelConfig) { c.StatusPixel = c.ButtonPins[0] }, ErrDuplicatePin},
		{"zero blink", func(c *PanelConfig) { c.BlinkInterval = 0 }, ErrInvalidInterval},
		{"negative debounce", func(c *PanelConfig) { c.DebounceDelay = -time.Millisecond }, ErrInvalidInterval},
		{"zero line limit", func(c *PanelConfig) { c.MaxLineLength = 0 }, ErrInvalidLimit},
		{"status pixel ok", func(c *PanelConfig) { c.StatusPixel = 16 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPinErrorMessage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ButtonPins[0] = 18

	err := cfg.Validate()
	var pinErr *PinError
	if !errors.As(err, &pinErr) {
		t.Fatalf("expected *PinError, got %v", err)
	}
	if got := pinErr.Error(); got != "gpio18: button conflicts with led" {
		t.Errorf("message = %q", got)
	}
}

func TestRole(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StatusPixel = 16

	tests := map[GPIOPin]PinRole{
		18: RoleLED,
		21: RoleLED,
		10: RoleButton,
		16: RoleStatusPixel,
		0:  RoleNone,
		25: RoleNone,
	}
	for pin, want := range tests {
		if got := cfg.Role(pin); got != want {
			t.Errorf("Role(%d) = %v, want %v", pin, got, want)
		}
	}
}

func TestParsePins(t *testing.T) {
	pins, err := ParsePins("18, 19,20,21", NumLEDs)
	if err != nil {
		t.Fatalf("ParsePins failed: %v", err)
	}
	if len(pins) != 4 || pins[0] != 18 || pins[3] != 21 {
		t.Errorf("pins = %v", pins)
	}

	if _, err := ParsePins("1,2,3", NumLEDs); !errors.Is(err, ErrPinCount) {
		t.Errorf("short list: err = %v, want ErrPinCount", err)
	}
	if _, err := ParsePins("1,2,x,4", NumLEDs); err == nil {
		t.Error("expected error for a non-numeric pin")
	}
}

func TestWithStatusPixel(t *testing.T) {
	cfg, err := DefaultConfig().WithStatusPixel("")
	if err != nil || cfg.StatusPixel != 0 {
		t.Errorf("empty pin: StatusPixel = %d, err = %v", cfg.StatusPixel, err)
	}

	cfg, err = DefaultConfig().WithStatusPixel("16")
	if err != nil {
		t.Fatalf("WithStatusPixel failed: %v", err)
	}
	if cfg.StatusPixel != 16 || cfg.Role(16) != RoleStatusPixel {
		t.Errorf("StatusPixel = %d, role %v", cfg.StatusPixel, cfg.Role(16))
	}

	if _, err := DefaultConfig().WithStatusPixel("18"); !errors.Is(err, ErrDuplicatePin) {
		t.Errorf("pixel on an LED pin: err = %v, want ErrDuplicatePin", err)
	}
	if _, err := DefaultConfig().WithStatusPixel("x"); err == nil {
		t.Error("expected error for a non-numeric pin")
	}
}
