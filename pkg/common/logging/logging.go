// Package logging provides the zap loggers used by goinvoke to report
// failures that have no caller to return to, such as an error from a
// trailing invocation fired by a timer.
package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu       sync.RWMutex
	fallback *zap.Logger
)

// Default returns the process-wide logger. Unless replaced with SetDefault it
// is a production zap logger writing JSON to stderr, built on first use.
func Default() *zap.Logger {
	mu.RLock()
	l := fallback
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if fallback == nil {
		fallback = New("info")
	}
	return fallback
}

// SetDefault replaces the process-wide logger. A nil logger restores the
// built-in production logger on next use.
func SetDefault(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	fallback = l
}

// New builds a production logger at the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func New(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.Sampling = nil

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// OrDefault returns l, or Default if l is nil.
func OrDefault(l *zap.Logger) *zap.Logger {
	if l == nil {
		return Default()
	}
	return l
}

// ErrorReporter builds the handler for failures of deferred invocations.
// onError wins when set; otherwise the failure is logged at error level on
// logger (or Default) with the wrapper kind and name.
func ErrorReporter(kind, name string, onError func(error), logger *zap.Logger) func(error) {
	if onError != nil {
		return onError
	}
	return func(err error) {
		OrDefault(logger).Error("deferred invocation failed",
			zap.String("wrapper", kind),
			zap.String("name", name),
			zap.Error(err),
		)
	}
}
