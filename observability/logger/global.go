package logger

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

//nolint:gochecknoglobals // global logger singleton
var (
	global   atomic.Pointer[Logger]
	setOnce  sync.Once
	initOnce sync.Once
)

// SetGlobal configures the global logger. It panics when called more than once.
func SetGlobal(cfg Config) {
	called := false
	setOnce.Do(func() {
		initOnce.Do(func() {})

		l, err := newLogger(cfg)
		if err != nil {
			panic("[logger]: failed to initialize global logger: " + err.Error())
		}
		global.Store(&l)
		called = true
	})
	if !called {
		panic("[logger]: SetGlobal can only be called once")
	}
}

// Info logs a message at info level using the global logger.
func Info(msg any) { getGlobal().Info(msg) }

// Warn logs a message at warn level using the global logger.
func Warn(msg any) { getGlobal().Warn(msg) }

// Error logs a message at error level using the global logger.
func Error(msg any) { getGlobal().Error(msg) }

// Infof logs a formatted message at info level using the global logger.
func Infof(format string, args ...any) { getGlobal().Infof(format, args...) }

// Errorx logs an error at error level using the global logger.
func Errorx(err error) { getGlobal().Errorx(err) }

// Fatalx logs an error at fatal level using the global logger and then calls os.Exit(1).
func Fatalx(err error) { getGlobal().Fatalx(err) }

// With returns a child of the global logger with the given key-value pairs.
func With(keysAndValues ...any) Logger { return getGlobal().With(keysAndValues...) }

// WithContext returns a child of the global logger enriched with metadata from ctx.
func WithContext(ctx context.Context) Logger { return getGlobal().WithContext(ctx) }

// Named returns a named child of the global logger.
func Named(name string) Logger { return getGlobal().Named(name) }

// Sync flushes the global logger.
func Sync() error { return getGlobal().Sync() }

// getGlobal returns the global logger, building a pretty debug logger on first use
// when SetGlobal was never called.
func getGlobal() Logger {
	if l := global.Load(); l != nil {
		return *l
	}

	initOnce.Do(func() {
		l, err := newLogger(Config{Level: levelDebug, Encoding: EncodingPretty})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.CompareAndSwap(nil, &l)
	})

	if l := global.Load(); l != nil {
		return *l
	}
	return FromZap(zap.NewNop())
}
