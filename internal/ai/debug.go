package ai

import "sync/atomic"

// debugLogging gates the per-tick slog.Debug calls of controllers and the
// tick manager. Tick paths check it before building log attributes.
var debugLogging atomic.Bool

// EnableDebugLogging turns AI debug logs on or off. main sets it once from
// the configured log level; tests and benchmarks may toggle it.
func EnableDebugLogging(enabled bool) {
	debugLogging.Store(enabled)
}

// IsDebugEnabled reports whether AI debug logs are on:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("search point chosen", "agentID", id, "point", p)
//	}
func IsDebugEnabled() bool {
	return debugLogging.Load()
}
