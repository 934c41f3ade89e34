package dbglog

import (
	"io"
)

// Sink is the destination a formatted line is written to, such as a
// console stream or a serial device. It is io.Writer under a name that
// reads better in WriterConfig; write errors are ignored.
type Sink = io.Writer

// Clock renders the timestamp at the start of a line.
type Clock interface {
	// AppendTimestamp appends the current timestamp to dst.
	AppendTimestamp(dst []byte) []byte
}
