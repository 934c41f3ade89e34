//go:build !dbglog_error && !dbglog_warn && !dbglog_info && !dbglog_debug && !dbglog_trace

package dbglog

// Threshold is the highest level compiled into the binary. Without a
// dbglog_* build tag every call is compiled out, errors included.
const Threshold = LevelNone
