//go:build tinygo

package dbglog

import (
	"machine"
)

const platformLineEnding = "\r\n"

// boot is captured during package initialisation, which is as close to
// power-up as a library gets on a microcontroller.
var boot = NewUptimeClock()

// platformSink writes to machine.Serial directly to keep fmt and os out of
// the write path.
func platformSink() Sink {
	return machine.Serial
}

func platformClock() Clock {
	return boot
}
