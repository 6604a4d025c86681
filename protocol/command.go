package protocol

import (
	"encoding/json"
	"errors"
)

var ErrMalformedCommand = errors.New("malformed command")

// Command is a decoded host command
type Command struct {
	// Disabled is the requested disabled state. A missing key reads as false.
	Disabled bool

	// Present reports whether the "disabled" key was in the message
	Present bool
}

type commandMessage struct {
	Disabled *bool `json:"disabled"`
}

// DecodeCommand parses one command line. Unknown keys are ignored.
// Anything that is not a JSON object with an optional boolean "disabled"
// key is rejected with ErrMalformedCommand.
func DecodeCommand(line []byte) (Command, error) {
	var msg commandMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return Command{}, &DecodeError{Err: err}
	}
	if msg.Disabled == nil {
		return Command{}, nil
	}
	return Command{Disabled: *msg.Disabled, Present: true}, nil
}

// EncodeCommand builds the newline-terminated command line for the panel
func EncodeCommand(disabled bool) []byte {
	if disabled {
		return []byte(`{"disabled":true}` + CommandTerminator)
	}
	return []byte(`{"disabled":false}` + CommandTerminator)
}

// DecodeError wraps the JSON error behind a malformed command
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return ErrMalformedCommand.Error() + ": " + e.Err.Error()
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedCommand
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
