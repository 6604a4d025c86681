package core

import (
	"iter"
	"time"
)

// EventKind is the semantic event produced by a debounced button.
// The numeric values are what the panel reports on the wire.
type EventKind uint8

const (
	EventPressed  EventKind = 0
	EventReleased EventKind = 1
)

func (k EventKind) String() string {
	switch k {
	case EventPressed:
		return "pressed"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// ButtonEvent is one accepted transition of button ID (1-based)
type ButtonEvent struct {
	ID   uint8
	Kind EventKind
}

type buttonState uint8

const (
	stateIdle           buttonState = iota // Stable released
	stateDebouncing                        // Went high, waiting for it to settle
	statePressed                           // Stable pressed
	stateReleasePending                    // Went low, waiting for it to settle
)

// Button is the debounce state machine of a single active-high input.
// A level change must hold for the debounce window before it is accepted,
// and two accepted events are always at least the click delay apart; a
// settled change inside that window stays pending until the window closes.
type Button struct {
	debounce uint32 // ms
	click    uint32 // ms

	state       buttonState
	changedAt   uint32 // When the raw level last left the stable level
	lastEventAt uint32
	hasEvent    bool
}

// NewButton creates a released button with the given timing
func NewButton(debounce, clickDelay time.Duration) *Button {
	return &Button{
		debounce: DurationMillis(debounce),
		click:    DurationMillis(clickDelay),
	}
}

// Pressed reports whether the debounced state is pressed
func (b *Button) Pressed() bool {
	return b.state == statePressed || b.state == stateReleasePending
}

// Check advances the state machine with one raw sample taken at now.
// It returns at most one event per call.
func (b *Button) Check(now uint32, level bool) (EventKind, bool) {
	switch b.state {
	case stateIdle:
		if level {
			b.state = stateDebouncing
			b.changedAt = now
		}

	case stateDebouncing:
		if !level {
			// Bounce: back to where we were
			b.state = stateIdle
			return 0, false
		}
		if b.settled(now) {
			b.state = statePressed
			b.accept(now)
			return EventPressed, true
		}

	case statePressed:
		if !level {
			b.state = stateReleasePending
			b.changedAt = now
		}

	case stateReleasePending:
		if level {
			b.state = statePressed
			return 0, false
		}
		if b.settled(now) {
			b.state = stateIdle
			b.accept(now)
			return EventReleased, true
		}
	}

	return 0, false
}

// settled reports whether the pending level held long enough and the
// click delay since the previous event has passed
func (b *Button) settled(now uint32) bool {
	if elapsed(now, b.changedAt) < b.debounce {
		return false
	}
	return !b.hasEvent || elapsed(now, b.lastEventAt) >= b.click
}

func (b *Button) accept(now uint32) {
	b.lastEventAt = now
	b.hasEvent = true
}

// ButtonBank samples the panel buttons and turns them into events
type ButtonBank struct {
	gpio    GPIODriver
	pins    [NumButtons]GPIOPin
	buttons [NumButtons]*Button
}

// NewButtonBank configures the button pins as pull-down inputs
func NewButtonBank(gpio GPIODriver, cfg PanelConfig) (*ButtonBank, error) {
	bank := &ButtonBank{
		gpio: gpio,
		pins: cfg.ButtonPins,
	}
	for i, pin := range cfg.ButtonPins {
		if err := gpio.ConfigureInputPullDown(pin); err != nil {
			return nil, err
		}
		bank.buttons[i] = NewButton(cfg.DebounceDelay, cfg.ClickDelay)
	}
	return bank, nil
}

// Poll samples every button once and yields the events that fired, in
// button order. The sequence is lazy: each button is sampled only when the
// consumer asks for the next event.
func (bb *ButtonBank) Poll(now uint32) iter.Seq[ButtonEvent] {
	return func(yield func(ButtonEvent) bool) {
		for i, btn := range bb.buttons {
			kind, ok := btn.Check(now, bb.gpio.ReadPin(bb.pins[i]))
			if !ok {
				continue
			}
			if !yield(ButtonEvent{ID: uint8(i + 1), Kind: kind}) {
				return
			}
		}
	}
}

// Button returns the state machine for button id (1-based), or nil
func (bb *ButtonBank) Button(id int) *Button {
	if id < 1 || id > NumButtons {
		return nil
	}
	return bb.buttons[id-1]
}
