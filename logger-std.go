//go:build !tinygo

package dbglog

import (
	"os"
)

const platformLineEnding = "\n"

// platformSink is the process standard output.
func platformSink() Sink {
	return os.Stdout
}

func platformClock() Clock {
	return WallClock{}
}
