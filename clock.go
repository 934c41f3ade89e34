package dbglog

import (
	"strconv"
	"time"
)

// WallClock stamps lines with local wall-clock time as HH:MM:SS.mmm.
// It is the default on host builds.
type WallClock struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (c WallClock) AppendTimestamp(dst []byte) []byte {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().Local().AppendFormat(dst, "15:04:05.000")
}

// UptimeClock stamps lines with the milliseconds elapsed since Boot,
// rendered as "<n> ms". It is the default on TinyGo builds, where there is
// usually no real-time clock and time.Now counts from power-up.
type UptimeClock struct {
	Boot time.Time
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewUptimeClock returns an UptimeClock that counts from the moment it is
// called.
func NewUptimeClock() UptimeClock {
	return UptimeClock{Boot: time.Now()}
}

func (c UptimeClock) AppendTimestamp(dst []byte) []byte {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	ms := now().Sub(c.Boot).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	dst = strconv.AppendInt(dst, ms, 10)
	return append(dst, " ms"...)
}
