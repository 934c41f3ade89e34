//go:build tinygo

package dbglog

import (
	"machine"
)

// ConfigureSerial sets the baud rate of machine.Serial, the default sink.
// Call it before the first log line on boards where Serial is a UART.
func ConfigureSerial(baud uint32) error {
	return machine.Serial.Configure(machine.UARTConfig{BaudRate: baud})
}

// UARTSink writes lines to a secondary hardware UART.
type UARTSink struct {
	uart *machine.UART
}

// OpenUART configures u and returns a sink writing to it.
func OpenUART(u *machine.UART, c machine.UARTConfig) (*UARTSink, error) {
	if c.BaudRate == 0 {
		c.BaudRate = 115200
	}
	if err := u.Configure(c); err != nil {
		return nil, err
	}
	return &UARTSink{uart: u}, nil
}

func (s *UARTSink) Write(p []byte) (int, error) {
	return s.uart.Write(p)
}
