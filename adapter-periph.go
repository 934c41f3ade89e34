//go:build !tinygo

package dbglog

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/uart"
	"periph.io/x/conn/v3/uart/uartreg"
	"periph.io/x/host/v3"
)

// UARTSink writes lines to a serial line through a periph.io connection.
// Use it as the Sink of a Writer to log from a Linux board to a hardware
// UART instead of stdout.
type UARTSink struct {
	conn conn.Conn
	port io.Closer
}

// NewUARTSink wraps an already connected periph.io connection.
func NewUARTSink(c conn.Conn) *UARTSink {
	return &UARTSink{conn: c}
}

func (s *UARTSink) Write(p []byte) (int, error) {
	if err := s.conn.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *UARTSink) String() string {
	return "UARTSink(" + s.conn.String() + ")"
}

// Close releases the port when the sink was created by OpenUART.
func (s *UARTSink) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// UARTConfig holds the serial line settings for OpenUART.
type UARTConfig struct {
	// Port is a uartreg name. On Linux the serial device nodes are
	// registered by path or base name ("/dev/ttyAMA0" or "ttyAMA0"), and
	// RegisterTTY adds others. An empty name opens the first registered port.
	Port string
	// Baud is the line speed.
	// Defaults to 115200 if not provided.
	Baud int
}

// OpenUART initialises the periph.io host drivers, registers the Linux
// serial devices, opens the named UART and connects it as 8N1 without flow
// control. Other platforms only see openers registered with uartreg by the
// caller.
func OpenUART(c UARTConfig) (*UARTSink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}
	registerTTYs()

	if c.Baud == 0 {
		c.Baud = 115200
	}

	p, err := uartreg.Open(c.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to open UART port %q: %w", c.Port, err)
	}

	cn, err := p.Connect(physic.Frequency(c.Baud)*physic.Hertz, uart.One, uart.NoParity, uart.NoFlow, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to connect UART port %q: %w", c.Port, err)
	}

	return &UARTSink{conn: cn, port: p}, nil
}
