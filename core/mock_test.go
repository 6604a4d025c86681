package core

import (
	"bytes"
	"errors"
	"strings"

	"panelfw/protocol"
)

// MockGPIODriver is a test implementation of GPIODriver
type MockGPIODriver struct {
	pins    map[GPIOPin]bool
	modes   map[GPIOPin]string
	writes  map[GPIOPin]int
	failSet map[GPIOPin]bool
}

func NewMockGPIODriver() *MockGPIODriver {
	return &MockGPIODriver{
		pins:    make(map[GPIOPin]bool),
		modes:   make(map[GPIOPin]string),
		writes:  make(map[GPIOPin]int),
		failSet: make(map[GPIOPin]bool),
	}
}

var errMockSet = errors.New("mock: set failed")

func (m *MockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	m.modes[pin] = "output"
	m.pins[pin] = false
	return nil
}

func (m *MockGPIODriver) ConfigureInputPullUp(pin GPIOPin) error {
	m.modes[pin] = "pullup"
	m.pins[pin] = true
	return nil
}

func (m *MockGPIODriver) ConfigureInputPullDown(pin GPIOPin) error {
	m.modes[pin] = "pulldown"
	m.pins[pin] = false
	return nil
}

func (m *MockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	if m.failSet[pin] {
		return errMockSet
	}
	m.pins[pin] = value
	m.writes[pin]++
	return nil
}

func (m *MockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	return m.pins[pin], nil
}

func (m *MockGPIODriver) ReadPin(pin GPIOPin) bool {
	return m.pins[pin]
}

// setLevel drives an input pin from the outside
func (m *MockGPIODriver) setLevel(pin GPIOPin, level bool) {
	m.pins[pin] = level
}

// mockSerial is an in-memory serial link
type mockSerial struct {
	in  *protocol.FifoBuffer
	out bytes.Buffer
}

func newMockSerial() *mockSerial {
	return &mockSerial{in: protocol.NewFifoBuffer(1024)}
}

func (s *mockSerial) Buffered() int {
	return s.in.Available()
}

func (s *mockSerial) ReadByte() (byte, error) {
	return s.in.ReadByte()
}

func (s *mockSerial) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *mockSerial) feed(data string) {
	s.in.Write([]byte(data))
}

// lines returns and clears the event lines written so far
func (s *mockSerial) lines() []string {
	text := s.out.String()
	s.out.Reset()
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\r\n"), "\r\n")
}
