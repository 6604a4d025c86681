//go:build linux && !tinygo

package main

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"panelfw/host/serial"
	"panelfw/protocol"
)

// serialLink feeds a blocking serial port into a FIFO from a reader
// goroutine so the controller can keep polling without blocking.
type serialLink struct {
	port   serial.Port
	fifo   *protocol.SerialFifo
	logger zerolog.Logger
	done   chan struct{}

	overruns atomic.Uint32
}

func newSerialLink(port serial.Port, logger zerolog.Logger) *serialLink {
	return &serialLink{
		port:   port,
		fifo:   protocol.NewSerialFifo(256),
		logger: logger.With().Str("module", "link").Logger(),
		done:   make(chan struct{}),
	}
}

// Buffered returns the number of received bytes waiting to be read
func (l *serialLink) Buffered() int {
	return l.fifo.Buffered()
}

// ReadByte returns the oldest received byte
func (l *serialLink) ReadByte() (byte, error) {
	return l.fifo.ReadByte()
}

// Write sends data to the host
func (l *serialLink) Write(p []byte) (int, error) {
	return l.port.Write(p)
}

// start runs the reader until the port is closed
func (l *serialLink) start() {
	go l.readLoop()
}

// close closes the port and waits for the reader
func (l *serialLink) close() error {
	err := l.port.Close()
	<-l.done
	return err
}

func (l *serialLink) readLoop() {
	defer close(l.done)

	buf := make([]byte, 64)
	for {
		n, err := l.port.Read(buf)
		if n > 0 {
			if written := l.fifo.Write(buf[:n]); written < n {
				// Buffer full - the rest is lost
				l.overruns.Add(1)
				l.logger.Warn().Int("lost", n-written).Msg("Input FIFO full")
			}
		}
		if err == nil || errors.Is(err, io.EOF) {
			continue
		}
		if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed) {
			return
		}
		l.logger.Error().Err(err).Msg("Read failed")
		time.Sleep(100 * time.Millisecond)
	}
}
