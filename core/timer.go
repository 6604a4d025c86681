package core

import "time"

// Clock is a monotonic millisecond counter. It is free running and wraps
// at 2^32; all interval checks use unsigned subtraction.
type Clock interface {
	Millis() uint32
}

// ClockFunc adapts a plain function to the Clock interface
type ClockFunc func() uint32

// Millis returns the current counter value
func (f ClockFunc) Millis() uint32 {
	return f()
}

// ManualClock is a Clock that only moves when told to (tests, simulators)
type ManualClock struct {
	now uint32
}

// Millis returns the current manual time
func (m *ManualClock) Millis() uint32 {
	return m.now
}

// Set sets the current time in milliseconds
func (m *ManualClock) Set(ms uint32) {
	m.now = ms
}

// Advance moves the clock forward by d
func (m *ManualClock) Advance(d time.Duration) {
	m.now += DurationMillis(d)
}

// MillisFromMicros converts a microsecond timer value to milliseconds
func MillisFromMicros(us uint64) uint32 {
	return uint32(us / 1000)
}

// DurationMillis converts a duration to whole milliseconds
func DurationMillis(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32(d / time.Millisecond)
}

// elapsed returns the time between since and now, tolerating wraparound
func elapsed(now, since uint32) uint32 {
	return now - since
}
