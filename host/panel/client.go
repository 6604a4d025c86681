// Package panel talks to the button panel from the host side.
package panel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"panelfw/host/serial"
	"panelfw/protocol"
)

const (
	eventBuffer = 16
	readChunk   = 128
	maxLineLen  = 256
)

var ErrClosed = errors.New("panel client closed")

// Client reads button events from the panel and sends it commands
type Client struct {
	port   serial.Port
	logger zerolog.Logger

	events chan protocol.Event
	cancel context.CancelFunc
	wg     sync.WaitGroup

	writeMu sync.Mutex
	closed  atomic.Bool

	malformed atomic.Uint32
}

// NewClient wraps an open port. Call Start to begin reading.
func NewClient(port serial.Port, logger zerolog.Logger) *Client {
	return &Client{
		port:   port,
		logger: logger.With().Str("module", "panel").Logger(),
		events: make(chan protocol.Event, eventBuffer),
	}
}

// Start launches the reader goroutine. Events stops delivering when ctx is
// cancelled, the port fails, or Close is called.
func (c *Client) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go c.readLoop(ctx)
}

// Events returns the decoded button events. The channel is closed when the
// reader stops.
func (c *Client) Events() <-chan protocol.Event {
	return c.events
}

// Malformed returns how many lines could not be decoded
func (c *Client) Malformed() uint32 {
	return c.malformed.Load()
}

// SetDisabled sends the disabled command
func (c *Client) SetDisabled(disabled bool) error {
	if c.closed.Load() {
		return ErrClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := c.port.Write(protocol.EncodeCommand(disabled)); err != nil {
		return fmt.Errorf("failed to send disabled=%v: %w", disabled, err)
	}
	c.logger.Debug().Bool("disabled", disabled).Msg("Sent command")
	return nil
}

// Close stops the reader and closes the port
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	err := c.port.Close()
	c.wg.Wait()
	return err
}

func (c *Client) readLoop(ctx context.Context) {
	defer c.wg.Done()
	defer close(c.events)

	var pending bytes.Buffer
	buf := make([]byte, readChunk)

	for {
		n, err := c.port.Read(buf)
		if n > 0 {
			pending.Write(buf[:n])
			if !c.drainLines(ctx, &pending) {
				return
			}
		}
		if err != nil && !errors.Is(err, io.EOF) {
			// A timed out read reports io.EOF; anything else ends the session
			if !c.closed.Load() {
				c.logger.Error().Err(err).Msg("Read failed, stopping reader")
			}
			return
		}
		if ctx.Err() != nil {
			c.logger.Debug().Msg("Reader done")
			return
		}
	}
}

// drainLines decodes every complete line in pending. It returns false if
// the context ended while delivering.
func (c *Client) drainLines(ctx context.Context, pending *bytes.Buffer) bool {
	for {
		idx := bytes.IndexByte(pending.Bytes(), '\n')
		if idx < 0 {
			if pending.Len() > maxLineLen {
				c.logger.Warn().Int("bytes", pending.Len()).Msg("Dropping unterminated input")
				pending.Reset()
			}
			return true
		}

		line := pending.Next(idx + 1)
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		ev, err := protocol.DecodeEvent(line)
		if err != nil {
			c.malformed.Add(1)
			c.logger.Warn().Err(err).Bytes("line", line).Msg("Skipping malformed line")
			continue
		}

		c.logger.Trace().Int("button", ev.Button).Int("state", ev.State).Msg("Event")
		select {
		case c.events <- ev:
		case <-ctx.Done():
			return false
		}
	}
}
