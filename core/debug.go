package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures one controller event for post-mortem analysis
type TraceEvent struct {
	EventType uint8  // Event type code
	ID        uint8  // Button or LED id
	Clock     uint32 // Millisecond clock at event
	Value     uint32 // Context-dependent value
}

// Event type codes
const (
	EvtCommand  = 1 // Command applied, Value = disabled flag
	EvtDiscard  = 2 // Inbound line discarded, Value = line length
	EvtButton   = 3 // Button event handled, Value = event code
	EvtSuppress = 4 // Button event ignored while disabled, Value = event code
	EvtEmit     = 5 // Event line written, Value = bytes written
	EvtBlink    = 6 // Alert LED blink toggle, Value = new state
)

const (
	TraceRingSize = 32 // Keep last 32 events for post-mortem
)

// traceRing is a fixed ring of the most recent controller events
type traceRing struct {
	events [TraceRingSize]TraceEvent
	head   uint8 // Next write position
}

// record captures an event, overwriting the oldest one
func (r *traceRing) record(eventType, id uint8, clock, value uint32) {
	idx := r.head
	r.events[idx] = TraceEvent{
		EventType: eventType,
		ID:        id,
		Clock:     clock,
		Value:     value,
	}
	r.head = (idx + 1) % TraceRingSize
}

// snapshot returns the recorded events from oldest to newest
func (r *traceRing) snapshot() []TraceEvent {
	out := make([]TraceEvent, 0, TraceRingSize)
	start := r.head
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := r.events[(start+i)%TraceRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

func (r *traceRing) clear() {
	for i := range r.events {
		r.events[i] = TraceEvent{}
	}
	r.head = 0
}

// traceName returns the dump label of an event type
func traceName(eventType uint8) string {
	switch eventType {
	case EvtCommand:
		return "COMMAND"
	case EvtDiscard:
		return "DISCARD"
	case EvtButton:
		return "BUTTON"
	case EvtSuppress:
		return "SUPPRESS"
	case EvtEmit:
		return "EMIT"
	case EvtBlink:
		return "BLINK"
	default:
		return "UNKNOWN"
	}
}

// formatTrace renders one trace event as a dump line
func formatTrace(evt TraceEvent) string {
	return "[TRACE] " + traceName(evt.EventType) +
		" id=" + itoa(int(evt.ID)) +
		" clock=" + utoa(evt.Clock) +
		" v=" + utoa(evt.Value)
}
