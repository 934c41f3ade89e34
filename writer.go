package dbglog

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// FormatBufferSize bounds the formatted variants (Errorf, Errorfn, ...).
// Longer messages are cut to FormatBufferSize-1 bytes on a rune boundary.
const FormatBufferSize = 256

const hexDigits = "0123456789abcdef"

type WriterConfig struct {
	// Threshold is the highest level written. Values above LevelTrace are
	// clamped. Defaults to LevelNone, which writes nothing.
	Threshold Level
	// Sink receives one Write per line.
	// Defaults to the platform console (stdout, or machine.Serial on TinyGo).
	Sink Sink
	// Clock stamps each line.
	// Defaults to WallClock on hosts and UptimeClock on TinyGo.
	Clock Clock
	// LineEnding terminates each line.
	// Defaults to "\n" on hosts and "\r\n" on TinyGo.
	LineEnding string
}

// Writer formats lines as "[<timestamp>] [<LEVEL>] <message>" and writes
// them to a Sink. A line is assembled in full before the single Write, but
// Writer has no locking: callers sharing one across goroutines must
// serialise calls themselves.
type Writer struct {
	threshold Level
	sink      Sink
	clock     Clock
	eol       string
}

// NewWriter creates a Writer, applying platform defaults to unset fields.
func NewWriter(c WriterConfig) *Writer {
	if c.Sink == nil {
		c.Sink = platformSink()
	}
	if c.Clock == nil {
		c.Clock = platformClock()
	}
	if c.LineEnding == "" {
		c.LineEnding = platformLineEnding
	}
	return &Writer{
		threshold: Clamp(int(c.Threshold)),
		sink:      c.Sink,
		clock:     c.Clock,
		eol:       c.LineEnding,
	}
}

func (w *Writer) Threshold() Level {
	return w.threshold
}

// Enabled reports whether a line of level l would be written.
func (w *Writer) Enabled(l Level) bool {
	return l != LevelNone && l <= w.threshold
}

func (w *Writer) Error(msg string) { w.log(LevelError, msg) }
func (w *Writer) Warn(msg string)  { w.log(LevelWarn, msg) }
func (w *Writer) Info(msg string)  { w.log(LevelInfo, msg) }
func (w *Writer) Debug(msg string) { w.log(LevelDebug, msg) }
func (w *Writer) Trace(msg string) { w.log(LevelTrace, msg) }

func (w *Writer) Errorf(format string, args ...any) { w.logf(LevelError, format, args...) }
func (w *Writer) Warnf(format string, args ...any)  { w.logf(LevelWarn, format, args...) }
func (w *Writer) Infof(format string, args ...any)  { w.logf(LevelInfo, format, args...) }
func (w *Writer) Debugf(format string, args ...any) { w.logf(LevelDebug, format, args...) }
func (w *Writer) Tracef(format string, args ...any) { w.logf(LevelTrace, format, args...) }

// Errorfn and the other *fn variants call fn only when the level is
// enabled, so building the message costs nothing otherwise.
func (w *Writer) Errorfn(fn func() string) { w.logfn(LevelError, fn) }
func (w *Writer) Warnfn(fn func() string)  { w.logfn(LevelWarn, fn) }
func (w *Writer) Infofn(fn func() string)  { w.logfn(LevelInfo, fn) }
func (w *Writer) Debugfn(fn func() string) { w.logfn(LevelDebug, fn) }
func (w *Writer) Tracefn(fn func() string) { w.logfn(LevelTrace, fn) }

// Hex writes data as a DEBUG line of the form
// "<prefix> [<n> bytes]: 0a ff ". Empty data writes nothing.
func (w *Writer) Hex(prefix string, data []byte) {
	if len(data) == 0 || !w.Enabled(LevelDebug) {
		return
	}
	w.print(LevelDebug, string(appendHex(nil, prefix, data)))
}

func (w *Writer) log(l Level, msg string) {
	if w.Enabled(l) {
		w.print(l, msg)
	}
}

func (w *Writer) logf(l Level, format string, args ...any) {
	if w.Enabled(l) {
		w.print(l, sprintf(format, args...))
	}
}

func (w *Writer) logfn(l Level, fn func() string) {
	if w.Enabled(l) {
		w.print(l, truncate(fn(), FormatBufferSize-1))
	}
}

func (w *Writer) print(l Level, msg string) {
	buf := make([]byte, 0, len(msg)+len(w.eol)+32)
	buf = append(buf, '[')
	buf = w.clock.AppendTimestamp(buf)
	buf = append(buf, "] ["...)
	buf = append(buf, l.tag()...)
	buf = append(buf, "] "...)
	buf = append(buf, msg...)
	buf = append(buf, w.eol...)
	_, _ = w.sink.Write(buf)
}

func appendHex(dst []byte, prefix string, data []byte) []byte {
	dst = append(dst, prefix...)
	dst = append(dst, " ["...)
	dst = strconv.AppendInt(dst, int64(len(data)), 10)
	dst = append(dst, " bytes]: "...)
	for _, b := range data {
		dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0F], ' ')
	}
	return dst
}

// sprintf renders a formatted message within FormatBufferSize. A bad verb
// or argument count is rendered by fmt as %!verb(...) rather than failing;
// go vet's printf check catches it at build time.
func sprintf(format string, args ...any) string {
	return truncate(fmt.Sprintf(format, args...), FormatBufferSize-1)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
