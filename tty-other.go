//go:build !linux && !tinygo

package dbglog

// registerTTYs is Linux only; elsewhere OpenUART needs a uartreg opener
// registered by the caller.
func registerTTYs() {}
