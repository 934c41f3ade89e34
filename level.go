package dbglog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownLevel = errors.New("unknown log level")

// Level is the severity of a log line. Each level enables itself and
// every level below it.
type Level uint8

const (
	// LevelNone disables all output, including errors.
	LevelNone Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// Constants derived from the build-time Threshold. Branches guarded by a
// false constant are removed by the compiler together with their arguments.
const (
	ErrorEnabled = Threshold >= LevelError
	WarnEnabled  = Threshold >= LevelWarn
	InfoEnabled  = Threshold >= LevelInfo
	DebugEnabled = Threshold >= LevelDebug
	TraceEnabled = Threshold >= LevelTrace
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return "unknown"
	}
}

// tag is the fixed-width form written between brackets on every line.
func (l Level) tag() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN "
	case LevelInfo:
		return "INFO "
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return "?????"
	}
}

// Clamp maps a numeric threshold to the nearest defined level.
func Clamp(n int) Level {
	switch {
	case n < int(LevelNone):
		return LevelNone
	case n > int(LevelTrace):
		return LevelTrace
	default:
		return Level(n)
	}
}

// ParseLevel accepts a level name (any case) or a number. Numbers are
// clamped to the defined range.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Clamp(n), nil
	}
	for l := LevelNone; l <= LevelTrace; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return LevelNone, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}
