//go:build rp2350

package main

import "testing"

func TestTimerRegistersRP2350(t *testing.T) {
	if timerTIMERAWH != 0x400B0024 || timerTIMERAWL != 0x400B0028 {
		t.Errorf("raw timer at %#x/%#x, want 0x400B0024/0x400B0028", timerTIMERAWH, timerTIMERAWL)
	}
}
