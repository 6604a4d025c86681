package protocol

import (
	"errors"
	"sync"
)

var ErrBufferEmpty = errors.New("buffer empty")

// FifoBuffer is a circular buffer for serial I/O
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer creates a new FifoBuffer with the specified capacity
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data to the FIFO buffer
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		nextWrite := (f.write + 1) % f.size
		if nextWrite == f.read {
			// Buffer full
			break
		}
		f.buf[f.write] = b
		f.write = nextWrite
		written++
	}
	return written
}

// Read reads up to len(data) bytes from the FIFO buffer
func (f *FifoBuffer) Read(data []byte) int {
	read := 0
	for i := range data {
		if f.read == f.write {
			// Buffer empty
			break
		}
		data[i] = f.buf[f.read]
		f.read = (f.read + 1) % f.size
		read++
	}
	return read
}

// ReadByte removes and returns the oldest byte
func (f *FifoBuffer) ReadByte() (byte, error) {
	if f.read == f.write {
		return 0, ErrBufferEmpty
	}
	b := f.buf[f.read]
	f.read = (f.read + 1) % f.size
	return b, nil
}

// Available returns the number of bytes available for reading
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Buffered returns the number of bytes ready to read. With ReadByte it
// makes FifoBuffer a ByteSource.
func (f *FifoBuffer) Buffered() int {
	return f.Available()
}

// Free returns the number of bytes available for writing
func (f *FifoBuffer) Free() int {
	return f.size - f.Available() - 1
}

// IsEmpty returns true if the buffer is empty
func (f *FifoBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}

// SerialFifo is a FifoBuffer shared between a reader goroutine that fills
// it and a polling loop that drains it. It implements ByteSource.
type SerialFifo struct {
	mu   sync.Mutex
	fifo *FifoBuffer
}

// NewSerialFifo creates a SerialFifo with the given capacity
func NewSerialFifo(capacity int) *SerialFifo {
	return &SerialFifo{fifo: NewFifoBuffer(capacity)}
}

// Write appends data and returns how many bytes fit
func (s *SerialFifo) Write(data []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fifo.Write(data)
}

// Buffered returns the number of bytes ready to read
func (s *SerialFifo) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fifo.Available()
}

// ReadByte removes and returns the oldest byte
func (s *SerialFifo) ReadByte() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fifo.ReadByte()
}

// Reset drops all buffered bytes
func (s *SerialFifo) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fifo.Reset()
}
