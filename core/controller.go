package core

import (
	"panelfw/protocol"
)

// SerialPort is the link to the host. Reads are non-blocking: the
// controller only reads what Buffered reports. TinyGo's machine.Serial
// satisfies it.
type SerialPort interface {
	protocol.ByteSource
	Write(p []byte) (int, error)
}

// Stats counts controller activity since start
type Stats struct {
	CommandsApplied  uint32
	LinesDiscarded   uint32
	EventsEmitted    uint32
	EventsSuppressed uint32
}

// Controller is the panel's polling loop and all of its state
type Controller struct {
	cfg     PanelConfig
	clock   Clock
	port    SerialPort
	lines   *protocol.LineReader
	leds    *LEDBank
	buttons *ButtonBank

	disabled  bool
	lastBlink uint32
	blinkMs   uint32

	debug DebugWriter
	trace traceRing
	stats Stats
}

// NewController configures the panel pins and returns a controller with
// all LEDs off and the panel enabled.
func NewController(cfg PanelConfig, gpio GPIODriver, port SerialPort, clock Clock) (*Controller, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	leds, err := NewLEDBank(gpio, cfg)
	if err != nil {
		return nil, err
	}
	buttons, err := NewButtonBank(gpio, cfg)
	if err != nil {
		return nil, err
	}

	return &Controller{
		cfg:     cfg,
		clock:   clock,
		port:    port,
		lines:   protocol.NewLineReader(port, cfg.MaxLineLength, DurationMillis(cfg.LineTimeout)),
		leds:    leds,
		buttons: buttons,
		blinkMs: DurationMillis(cfg.BlinkInterval),
		debug:   func(string) {},
	}, nil
}

// SetDebugWriter sets where debug messages go. Pass nil to silence them.
// The writer must not share the protocol serial link.
func (c *Controller) SetDebugWriter(w DebugWriter) {
	if w == nil {
		w = func(string) {}
	}
	c.debug = w
}

// Run calls Step forever, calling yield between iterations
func (c *Controller) Run(yield func()) {
	for {
		c.Step()
		if yield != nil {
			yield()
		}
	}
}

// Step performs one loop iteration: command ingestion, button polling
// and event handling, then the alert blink tick.
func (c *Controller) Step() {
	now := c.clock.Millis()

	if line, ok := c.lines.Next(now); ok {
		c.HandleLine(line)
	}

	for ev := range c.buttons.Poll(now) {
		c.HandleButton(ev)
	}

	c.blink(now)
}

// HandleLine applies one inbound command line. A line that does not decode
// is dropped and leaves the controller untouched.
func (c *Controller) HandleLine(line []byte) {
	now := c.clock.Millis()

	cmd, err := protocol.DecodeCommand(line)
	if err != nil {
		// Best effort: no reply, no state change
		c.stats.LinesDiscarded++
		c.trace.record(EvtDiscard, 0, now, uint32(len(line)))
		return
	}

	c.disabled = cmd.Disabled
	if !c.disabled {
		// Leaving (or confirming) enabled mode always ends with the alert LED off
		_ = c.leds.Set(AlertLED, false)
	}

	c.stats.CommandsApplied++
	c.trace.record(EvtCommand, 0, now, boolDigit(c.disabled))
	c.debug("command disabled=" + utoa(boolDigit(c.disabled)))
}

// HandleButton reacts to one debounced button event. Nothing happens while
// the panel is disabled.
func (c *Controller) HandleButton(ev ButtonEvent) {
	now := c.clock.Millis()

	if c.disabled {
		c.stats.EventsSuppressed++
		c.trace.record(EvtSuppress, ev.ID, now, uint32(ev.Kind))
		return
	}
	c.trace.record(EvtButton, ev.ID, now, uint32(ev.Kind))

	id := int(ev.ID)
	if id <= SelectorLEDs && ev.Kind == EventPressed {
		_ = c.leds.Select(id)
	}
	if id == AlertLED {
		_ = c.leds.Toggle(AlertLED)
	}

	// Releases of the selector buttons are not reported
	if id == AlertLED || ev.Kind == EventPressed {
		c.emit(ev, now)
	}
}

// emit writes one event line to the host. Write errors are not retried.
func (c *Controller) emit(ev ButtonEvent, now uint32) {
	data, err := protocol.EncodeEvent(protocol.Event{
		Button: int(ev.ID),
		State:  int(ev.Kind),
	})
	if err != nil {
		return
	}
	n, _ := c.port.Write(data)
	c.stats.EventsEmitted++
	c.trace.record(EvtEmit, ev.ID, now, uint32(n))
	c.debug("button " + itoa(int(ev.ID)) + " " + ev.Kind.String())
}

// blink inverts the alert LED once per blink interval while disabled.
// The interval runs from the previous toggle.
func (c *Controller) blink(now uint32) {
	if !c.disabled {
		return
	}
	if elapsed(now, c.lastBlink) < c.blinkMs {
		return
	}
	c.lastBlink = now
	_ = c.leds.Toggle(AlertLED)
	c.trace.record(EvtBlink, AlertLED, now, boolDigit(c.leds.Get(AlertLED)))
}

// Disabled reports whether button handling is suppressed
func (c *Controller) Disabled() bool {
	return c.disabled
}

// LEDs returns the current LED states, index i is LED i+1
func (c *Controller) LEDs() [NumLEDs]bool {
	return c.leds.States()
}

// Selected returns the lit selector LED (1-3), or 0
func (c *Controller) Selected() int {
	return c.leds.Selected()
}

// Config returns the effective configuration
func (c *Controller) Config() PanelConfig {
	return c.cfg
}

// Stats returns the activity counters
func (c *Controller) Stats() Stats {
	return c.stats
}

// Trace returns the recent controller events, oldest first
func (c *Controller) Trace() []TraceEvent {
	return c.trace.snapshot()
}

// DumpTrace writes the trace ring through the debug writer and clears it
func (c *Controller) DumpTrace() {
	c.debug("[TRACE] === Trace Dump ===")
	for _, evt := range c.trace.snapshot() {
		c.debug(formatTrace(evt))
	}
	c.debug("[TRACE] dropped_lines=" + utoa(c.lines.Dropped()) +
		" discarded=" + utoa(c.stats.LinesDiscarded) +
		" emitted=" + utoa(c.stats.EventsEmitted))
	c.debug("[TRACE] === End Dump ===")
	c.trace.clear()
}
