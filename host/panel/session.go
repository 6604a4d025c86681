package panel

import (
	"panelfw/protocol"
)

// TransitionKind describes what a button event did to a Session
type TransitionKind int

const (
	Ignored        TransitionKind = iota
	Selected                      // A channel button picked a channel
	CaptureStarted                // Button 4 went down with a channel selected
	CaptureStopped                // Button 4 came up after a capture started
	NoSelection                   // Button 4 used before any channel was picked
)

func (k TransitionKind) String() string {
	switch k {
	case Selected:
		return "selected"
	case CaptureStarted:
		return "capture_started"
	case CaptureStopped:
		return "capture_stopped"
	case NoSelection:
		return "no_selection"
	default:
		return "ignored"
	}
}

// Transition is the result of feeding one event to a Session
type Transition struct {
	Kind    TransitionKind
	Channel int
}

// Session tracks the host's view of the panel: which channel buttons 1-3
// selected, and whether button 4 is holding a capture open.
type Session struct {
	channel   int
	capturing bool
}

// Channel returns the selected channel (1-3), or 0
func (s *Session) Channel() int {
	return s.channel
}

// Capturing reports whether a capture is in progress
func (s *Session) Capturing() bool {
	return s.capturing
}

// Handle applies one event
func (s *Session) Handle(ev protocol.Event) Transition {
	if ev.Button < protocol.MaxButton {
		if !ev.Pressed() {
			return Transition{Kind: Ignored, Channel: s.channel}
		}
		s.channel = ev.Button
		return Transition{Kind: Selected, Channel: s.channel}
	}

	if s.channel == 0 {
		return Transition{Kind: NoSelection}
	}
	if ev.Pressed() {
		s.capturing = true
		return Transition{Kind: CaptureStarted, Channel: s.channel}
	}
	if !s.capturing {
		return Transition{Kind: Ignored, Channel: s.channel}
	}
	s.capturing = false
	return Transition{Kind: CaptureStopped, Channel: s.channel}
}
