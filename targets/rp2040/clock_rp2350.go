//go:build rp2350

package main

// RP2350 TIMER0 base address. The RP2040 timer lives at 0x40054000.
const timerBase = 0x400B0000
