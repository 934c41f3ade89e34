//go:build dbglog_warn && !dbglog_info && !dbglog_debug && !dbglog_trace

package dbglog

// Threshold is the highest level compiled into the binary.
const Threshold = LevelWarn
