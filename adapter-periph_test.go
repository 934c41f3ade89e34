//go:build !tinygo

package dbglog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/uart"
	"periph.io/x/conn/v3/uart/uartreg"
)

// --- Mocks ---

type mockUARTConn struct {
	tx  []byte
	err error
}

func (m *mockUARTConn) Tx(w, r []byte) error {
	if m.err != nil {
		return m.err
	}
	m.tx = append(m.tx, w...)
	return nil
}

func (m *mockUARTConn) Duplex() conn.Duplex { return conn.Full }
func (m *mockUARTConn) String() string      { return "mockUART" }

type mockCloser struct {
	closed int
}

func (m *mockCloser) Close() error {
	m.closed++
	return nil
}

// mockUARTPort is a uart.PortCloser handing out a mockUARTConn.
type mockUARTPort struct {
	conn   *mockUARTConn
	freq   physic.Frequency
	stop   uart.Stop
	parity uart.Parity
	flow   uart.Flow
	bits   int
	closed int
}

func (m *mockUARTPort) String() string                      { return "mockUARTPort" }
func (m *mockUARTPort) LimitSpeed(f physic.Frequency) error { return nil }

func (m *mockUARTPort) Connect(f physic.Frequency, stopBit uart.Stop, parity uart.Parity, flow uart.Flow, bits int) (conn.Conn, error) {
	m.freq, m.stop, m.parity, m.flow, m.bits = f, stopBit, parity, flow, bits
	return m.conn, nil
}

func (m *mockUARTPort) Close() error {
	m.closed++
	return nil
}

func registerMockUART(t *testing.T, name string) *mockUARTPort {
	t.Helper()
	p := &mockUARTPort{conn: &mockUARTConn{}}
	require.NoError(t, uartreg.Register(name, nil, -1, func() (uart.PortCloser, error) {
		return p, nil
	}))
	t.Cleanup(func() { uartreg.Unregister(name) })
	return p
}

// --- Tests ---

func TestUARTSinkWrite(t *testing.T) {
	c := &mockUARTConn{}
	s := NewUARTSink(c)

	n, err := s.Write([]byte("abc"))

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("abc"), c.tx)
	assert.Equal(t, "UARTSink(mockUART)", s.String())
}

func TestUARTSinkWriteError(t *testing.T) {
	c := &mockUARTConn{err: errors.New("bus fault")}
	s := NewUARTSink(c)

	n, err := s.Write([]byte("abc"))

	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestUARTSinkAsWriterSink(t *testing.T) {
	c := &mockUARTConn{}
	w := NewWriter(WriterConfig{
		Threshold:  LevelDebug,
		Sink:       NewUARTSink(c),
		Clock:      fixedClock("42 ms"),
		LineEnding: "\r\n",
	})

	w.Warn("low battery")
	w.Hex("rx", []byte{0xDE, 0xAD})
	w.Trace("dropped")

	assert.Equal(t, "[42 ms] [WARN ] low battery\r\n[42 ms] [DEBUG] rx [2 bytes]: de ad \r\n", string(c.tx))
}

func TestUARTSinkWriteErrorIsSilent(t *testing.T) {
	c := &mockUARTConn{err: errors.New("bus fault")}
	w := NewWriter(WriterConfig{Threshold: LevelError, Sink: NewUARTSink(c)})

	assert.NotPanics(t, func() { w.Error("lost") })
}

func TestUARTSinkClose(t *testing.T) {
	p := &mockCloser{}
	s := &UARTSink{conn: &mockUARTConn{}, port: p}

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, p.closed)

	assert.NoError(t, NewUARTSink(&mockUARTConn{}).Close())
}

func TestOpenUARTUnknownPort(t *testing.T) {
	s, err := OpenUART(UARTConfig{Port: "dbglog-no-such-uart"})

	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestOpenUARTRegisteredPort(t *testing.T) {
	p := registerMockUART(t, "dbglog-test-uart")

	s, err := OpenUART(UARTConfig{Port: "dbglog-test-uart"})
	require.NoError(t, err)

	assert.Equal(t, 115200*physic.Hertz, p.freq)
	assert.Equal(t, uart.One, p.stop)
	assert.Equal(t, uart.NoParity, p.parity)
	assert.Equal(t, uart.NoFlow, p.flow)
	assert.Equal(t, 8, p.bits)

	w := NewWriter(WriterConfig{
		Threshold:  LevelInfo,
		Sink:       s,
		Clock:      fixedClock("7 ms"),
		LineEnding: "\r\n",
	})
	w.Info("link up")
	assert.Equal(t, "[7 ms] [INFO ] link up\r\n", string(p.conn.tx))

	require.NoError(t, s.Close())
	assert.Equal(t, 1, p.closed)
}

func TestOpenUARTBaud(t *testing.T) {
	p := registerMockUART(t, "dbglog-test-uart-9600")

	s, err := OpenUART(UARTConfig{Port: "dbglog-test-uart-9600", Baud: 9600})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 9600*physic.Hertz, p.freq)
}
