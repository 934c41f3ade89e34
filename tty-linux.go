//go:build linux && !tinygo

package dbglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/uart"
	"periph.io/x/conn/v3/uart/uartreg"
)

// ttyGlobs are the serial device nodes registered with uartreg on first use
// of OpenUART. On a Raspberry Pi /dev/serial0 points at the header UART.
var ttyGlobs = []string{
	"/dev/serial[0-9]",
	"/dev/ttyAMA[0-9]*",
	"/dev/ttyS[0-9]*",
	"/dev/ttyUSB[0-9]*",
	"/dev/ttyACM[0-9]*",
}

var registerTTYsOnce sync.Once

func registerTTYs() {
	registerTTYsOnce.Do(func() {
		for _, g := range ttyGlobs {
			paths, _ := filepath.Glob(g)
			for _, p := range paths {
				// Already registered or vanished since the glob: skip.
				_ = RegisterTTY(p)
			}
		}
	})
}

// RegisterTTY makes a Linux serial device available to uartreg, and so to
// OpenUART, under its path with its base name as alias ("/dev/ttyS0",
// "ttyS0").
func RegisterTTY(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to register tty: %w", err)
	}
	return uartreg.Register(path, []string{filepath.Base(path)}, -1, func() (uart.PortCloser, error) {
		return openTTY(path)
	})
}

var ttySpeeds = map[int64]uint32{
	1200:    unix.B1200,
	2400:    unix.B2400,
	4800:    unix.B4800,
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	921600:  unix.B921600,
	1000000: unix.B1000000,
	2000000: unix.B2000000,
}

// ttyPort is a uart.PortCloser over a tty device node.
type ttyPort struct {
	path  string
	f     *os.File
	maxHz physic.Frequency
}

func openTTY(path string) (*ttyPort, error) {
	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	return &ttyPort{path: path, f: f}, nil
}

func (p *ttyPort) String() string {
	return p.path
}

func (p *ttyPort) LimitSpeed(f physic.Frequency) error {
	p.maxHz = f
	return nil
}

func (p *ttyPort) Close() error {
	return p.f.Close()
}

// Connect puts the tty in raw mode with the requested line settings.
func (p *ttyPort) Connect(f physic.Frequency, stopBit uart.Stop, parity uart.Parity, flow uart.Flow, bits int) (conn.Conn, error) {
	if p.maxHz != 0 && f > p.maxHz {
		f = p.maxHz
	}
	fd := int(p.f.Fd())
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read termios: %w", p.path, err)
	}
	if err := applyTermios(t, f, stopBit, parity, flow, bits); err != nil {
		return nil, fmt.Errorf("%s: %w", p.path, err)
	}
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		return nil, fmt.Errorf("%s: failed to write termios: %w", p.path, err)
	}
	return &ttyConn{port: p}, nil
}

func applyTermios(t *unix.Termios, f physic.Frequency, stopBit uart.Stop, parity uart.Parity, flow uart.Flow, bits int) error {
	speed, ok := ttySpeeds[int64(f/physic.Hertz)]
	if !ok {
		return fmt.Errorf("unsupported baud rate %s", f)
	}

	// Raw mode.
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CBAUD | unix.CSIZE | unix.CSTOPB | unix.PARENB | unix.PARODD | unix.CRTSCTS
	t.Cflag |= unix.CREAD | unix.CLOCAL | speed
	t.Ispeed = speed
	t.Ospeed = speed

	switch bits {
	case 5:
		t.Cflag |= unix.CS5
	case 6:
		t.Cflag |= unix.CS6
	case 7:
		t.Cflag |= unix.CS7
	case 8:
		t.Cflag |= unix.CS8
	default:
		return fmt.Errorf("unsupported data bits %d", bits)
	}

	switch stopBit {
	case uart.One:
	case uart.Two:
		t.Cflag |= unix.CSTOPB
	default:
		return fmt.Errorf("unsupported stop bits %v", stopBit)
	}

	switch parity {
	case uart.NoParity:
	case uart.Even:
		t.Cflag |= unix.PARENB
	case uart.Odd:
		t.Cflag |= unix.PARENB | unix.PARODD
	default:
		return fmt.Errorf("unsupported parity %q", byte(parity))
	}

	switch flow {
	case uart.NoFlow:
	case uart.XOnXOff:
		t.Iflag |= unix.IXON | unix.IXOFF
	case uart.RTSCTS:
		t.Cflag |= unix.CRTSCTS
	default:
		return fmt.Errorf("unsupported flow control %v", flow)
	}
	return nil
}

// ttyConn is the connected side of a ttyPort.
type ttyConn struct {
	port *ttyPort
}

func (c *ttyConn) Tx(w, r []byte) error {
	if len(w) != 0 {
		if _, err := c.port.f.Write(w); err != nil {
			return err
		}
	}
	if len(r) != 0 {
		if _, err := io.ReadFull(c.port.f, r); err != nil {
			return err
		}
	}
	return nil
}

func (c *ttyConn) Duplex() conn.Duplex { return conn.Full }
func (c *ttyConn) String() string      { return c.port.path }
