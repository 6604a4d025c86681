//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// InitUSB configures machine.Serial, which is USB CDC on the RP2040.
// The baud rate only matters when the target routes Serial to a UART.
func InitUSB(baud uint32) error {
	return machine.Serial.Configure(machine.UARTConfig{BaudRate: baud})
}

// usbPort adapts machine.Serial to core.SerialPort
type usbPort struct{}

// Buffered returns the number of bytes available to read from USB
func (usbPort) Buffered() int {
	return machine.Serial.Buffered()
}

// ReadByte reads a single byte from USB
func (usbPort) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

// Write writes multiple bytes to USB
func (usbPort) Write(data []byte) (int, error) {
	return machine.Serial.Write(data)
}
