//go:build dbglog_trace

package dbglog

// Threshold is the highest level compiled into the binary.
const Threshold = LevelTrace
