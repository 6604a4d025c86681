package core

import (
	"errors"
	"testing"
)

func newTestBank(t *testing.T) (*LEDBank, *MockGPIODriver, PanelConfig) {
	t.Helper()
	gpio := NewMockGPIODriver()
	cfg := DefaultConfig()
	bank, err := NewLEDBank(gpio, cfg)
	if err != nil {
		t.Fatalf("NewLEDBank failed: %v", err)
	}
	return bank, gpio, cfg
}

func TestLEDBankSelectIsExclusive(t *testing.T) {
	bank, gpio, cfg := newTestBank(t)

	for _, id := range []int{3, 1, 2} {
		if err := bank.Select(id); err != nil {
			t.Fatalf("Select(%d) failed: %v", id, err)
		}
		for led := 1; led <= SelectorLEDs; led++ {
			want := led == id
			if bank.Get(led) != want || gpio.pins[cfg.LEDPins[led-1]] != want {
				t.Errorf("after Select(%d): LED %d = %v, want %v", id, led, bank.Get(led), want)
			}
		}
		if bank.Selected() != id {
			t.Errorf("Selected() = %d, want %d", bank.Selected(), id)
		}
	}
}

func TestLEDBankSelectLeavesAlert(t *testing.T) {
	bank, _, _ := newTestBank(t)

	if err := bank.Set(AlertLED, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := bank.Select(1); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if !bank.Get(AlertLED) {
		t.Error("Select must not clear the alert LED")
	}
}

func TestLEDBankToggle(t *testing.T) {
	bank, _, _ := newTestBank(t)

	for i, want := range []bool{true, false, true} {
		if err := bank.Toggle(AlertLED); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if bank.Get(AlertLED) != want {
			t.Errorf("toggle %d: LED 4 = %v, want %v", i, bank.Get(AlertLED), want)
		}
	}
}

func TestLEDBankInvalidIDs(t *testing.T) {
	bank, _, _ := newTestBank(t)

	if err := bank.Set(0, true); !errors.Is(err, ErrInvalidLED) {
		t.Errorf("Set(0) error = %v", err)
	}
	if err := bank.Set(5, true); !errors.Is(err, ErrInvalidLED) {
		t.Errorf("Set(5) error = %v", err)
	}
	if err := bank.Select(AlertLED); !errors.Is(err, ErrInvalidLED) {
		t.Errorf("Select(4) error = %v", err)
	}
	if bank.Get(9) {
		t.Error("Get of an invalid id should be false")
	}
}

func TestLEDBankFailedWriteKeepsState(t *testing.T) {
	bank, gpio, cfg := newTestBank(t)

	gpio.failSet[cfg.LEDPins[3]] = true
	if err := bank.Toggle(AlertLED); err == nil {
		t.Fatal("expected write error")
	}
	if bank.Get(AlertLED) {
		t.Error("state changed although the write failed")
	}
}
