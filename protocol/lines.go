package protocol

// LineReader assembles lines from a non-blocking byte source.
//
// A line ends at '\n' (a trailing '\r' is dropped) or when a partial line
// has seen no new byte for the idle timeout. Lines longer than the limit
// are dropped up to the next terminator.
type LineReader struct {
	src     ByteSource
	buf     []byte
	maxLen  int
	timeout uint32 // ms

	lastByteAt uint32
	overflow   bool // Dropping bytes until the next terminator

	dropped uint32
}

// NewLineReader creates a reader with the given line limit and idle timeout
// in milliseconds
func NewLineReader(src ByteSource, maxLen int, timeoutMs uint32) *LineReader {
	return &LineReader{
		src:     src,
		buf:     make([]byte, 0, maxLen),
		maxLen:  maxLen,
		timeout: timeoutMs,
	}
}

// Next drains buffered bytes until a line is complete and returns it.
// At most one line is returned per call; bytes after its terminator stay
// in the source. The returned slice is valid until the next call.
func (lr *LineReader) Next(now uint32) ([]byte, bool) {
	for lr.src.Buffered() > 0 {
		b, err := lr.src.ReadByte()
		if err != nil {
			break
		}
		lr.lastByteAt = now

		if b == '\n' {
			if lr.overflow {
				lr.overflow = false
				continue
			}
			return lr.take(), true
		}

		if lr.overflow {
			continue
		}
		// A '\r' right after a full-length line is the start of its CRLF
		if len(lr.buf) >= lr.maxLen && !(b == '\r' && len(lr.buf) == lr.maxLen) {
			lr.overflow = true
			lr.dropped++
			lr.buf = lr.buf[:0]
			continue
		}
		lr.buf = append(lr.buf, b)
	}

	if len(lr.buf) > 0 && now-lr.lastByteAt >= lr.timeout {
		return lr.take(), true
	}
	if lr.overflow && now-lr.lastByteAt >= lr.timeout {
		lr.overflow = false
	}
	return nil, false
}

// Pending returns the number of bytes of the partial line
func (lr *LineReader) Pending() int {
	return len(lr.buf)
}

// Dropped returns how many over-long lines were discarded
func (lr *LineReader) Dropped() uint32 {
	return lr.dropped
}

// Reset discards any partial line
func (lr *LineReader) Reset() {
	lr.buf = lr.buf[:0]
	lr.overflow = false
}

func (lr *LineReader) take() []byte {
	line := lr.buf
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	lr.buf = lr.buf[:0]
	return line
}
