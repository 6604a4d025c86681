package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedEvent = errors.New("malformed event")

// Event is a button event as it appears on the wire
type Event struct {
	Button int `json:"button"`
	State  int `json:"state"`
}

// Pressed reports whether the event is a press
func (e Event) Pressed() bool {
	return e.State == StatePressed
}

// EncodeEvent builds one event line, terminator included
func EncodeEvent(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return append(data, EventTerminator...), nil
}

type eventMessage struct {
	Button *int `json:"button"`
	State  *int `json:"state"`
}

// DecodeEvent parses an event line received from the panel.
// Surrounding whitespace, including the line terminator, is ignored.
func DecodeEvent(line []byte) (Event, error) {
	var msg eventMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if msg.Button == nil || msg.State == nil {
		return Event{}, fmt.Errorf("%w: missing button or state", ErrMalformedEvent)
	}
	if *msg.Button < MinButton || *msg.Button > MaxButton {
		return Event{}, fmt.Errorf("%w: button %d out of range", ErrMalformedEvent, *msg.Button)
	}
	return Event{Button: *msg.Button, State: *msg.State}, nil
}
