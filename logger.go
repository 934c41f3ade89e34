// Package dbglog is a leveled console logger whose threshold is fixed at
// build time with a dbglog_error, dbglog_warn, dbglog_info, dbglog_debug or
// dbglog_trace tag. Levels above the threshold compile to nothing.
//
// Go evaluates call arguments even when the callee does nothing. To keep
// an expensive argument out of a disabled build, guard the call with one of
// the *Enabled constants, or use DebugOnly, TraceOnly or an *fn variant.
package dbglog

// std writes to the platform console. It is not replaceable; build a
// Writer for any other sink.
var std = NewWriter(WriterConfig{Threshold: Threshold})

func Error(msg string) {
	if ErrorEnabled {
		std.print(LevelError, msg)
	}
}

func Warn(msg string) {
	if WarnEnabled {
		std.print(LevelWarn, msg)
	}
}

func Info(msg string) {
	if InfoEnabled {
		std.print(LevelInfo, msg)
	}
}

func Debug(msg string) {
	if DebugEnabled {
		std.print(LevelDebug, msg)
	}
}

func Trace(msg string) {
	if TraceEnabled {
		std.print(LevelTrace, msg)
	}
}

func Errorf(format string, args ...any) {
	if ErrorEnabled {
		std.print(LevelError, sprintf(format, args...))
	}
}

func Warnf(format string, args ...any) {
	if WarnEnabled {
		std.print(LevelWarn, sprintf(format, args...))
	}
}

func Infof(format string, args ...any) {
	if InfoEnabled {
		std.print(LevelInfo, sprintf(format, args...))
	}
}

func Debugf(format string, args ...any) {
	if DebugEnabled {
		std.print(LevelDebug, sprintf(format, args...))
	}
}

func Tracef(format string, args ...any) {
	if TraceEnabled {
		std.print(LevelTrace, sprintf(format, args...))
	}
}

func Errorfn(fn func() string) {
	if ErrorEnabled {
		std.logfn(LevelError, fn)
	}
}

func Warnfn(fn func() string) {
	if WarnEnabled {
		std.logfn(LevelWarn, fn)
	}
}

func Infofn(fn func() string) {
	if InfoEnabled {
		std.logfn(LevelInfo, fn)
	}
}

func Debugfn(fn func() string) {
	if DebugEnabled {
		std.logfn(LevelDebug, fn)
	}
}

func Tracefn(fn func() string) {
	if TraceEnabled {
		std.logfn(LevelTrace, fn)
	}
}

// Hex writes a DEBUG hex dump of data. Nil or empty data writes nothing.
func Hex(prefix string, data []byte) {
	if DebugEnabled {
		std.Hex(prefix, data)
	}
}

// DebugOnly runs fn only in builds with the debug level enabled.
func DebugOnly(fn func()) {
	if DebugEnabled {
		fn()
	}
}

// TraceOnly runs fn only in builds with the trace level enabled.
func TraceOnly(fn func()) {
	if TraceEnabled {
		fn()
	}
}
