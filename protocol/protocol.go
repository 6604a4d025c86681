// Package protocol implements the panel's line-delimited JSON protocol.
//
// The host sends commands such as {"disabled":true}; the panel reports
// button events as {"button":2,"state":0}. One JSON object per line.
package protocol

// Version represents the panel firmware version
const Version = "0.1.0"

// Protocol constants
const (
	CommandTerminator = "\n"
	EventTerminator   = "\r\n" // The panel terminates lines like println does

	// Valid button ids on the wire
	MinButton = 1
	MaxButton = 4
)

// Event codes reported in the "state" field
const (
	StatePressed  = 0
	StateReleased = 1
)

// ByteSource is a non-blocking byte stream. TinyGo's machine.Serial
// satisfies it, as does SerialFifo.
type ByteSource interface {
	// Buffered returns the number of bytes that can be read without blocking
	Buffered() int

	// ReadByte reads one buffered byte
	ReadByte() (byte, error)
}
