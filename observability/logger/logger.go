// Package logger provides a structured logging interface for applications.
//
// It wraps zap's SugaredLogger behind a small interface, supports JSON and pretty
// encodings and enriches entries with request metadata carried in the context.
package logger

import (
	"context"
	"errors"

	"github.com/code19m/errx"
	"go.uber.org/zap"

	"github.com/rise-and-shine/decor/meta"
)

// Logger defines the standard logging interface used across the module.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg any)
	// Info logs a message at info level.
	Info(msg any)
	// Warn logs a message at warn level.
	Warn(msg any)
	// Error logs a message at error level.
	Error(msg any)
	// Fatal logs a message at fatal level and then calls os.Exit(1).
	Fatal(msg any)

	// Debugf logs a formatted message at debug level.
	Debugf(format string, args ...any)
	// Infof logs a formatted message at info level.
	Infof(format string, args ...any)
	// Warnf logs a formatted message at warn level.
	Warnf(format string, args ...any)
	// Errorf logs a formatted message at error level.
	Errorf(format string, args ...any)
	// Fatalf logs a formatted message at fatal level and then calls os.Exit(1).
	Fatalf(format string, args ...any)

	// Warnx logs an error at warn level, expanding errx.ErrorX attributes into fields.
	Warnx(err error)
	// Errorx logs an error at error level, expanding errx.ErrorX attributes into fields.
	Errorx(err error)
	// Fatalx logs an error at fatal level and then calls os.Exit(1).
	Fatalx(err error)

	// With returns a child logger that adds the given key-value pairs to every entry.
	With(keysAndValues ...any) Logger
	// WithContext returns a child logger enriched with metadata found in ctx.
	WithContext(ctx context.Context) Logger
	// Named adds a sub-scope to the logger's name.
	Named(name string) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

// logger implements Logger using zap's SugaredLogger.
type logger struct {
	*zap.SugaredLogger
}

func newLogger(cfg Config) (Logger, error) {
	if cfg.Disable {
		return FromZap(zap.NewNop()), nil
	}

	zapConfig, err := cfg.zapConfig()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if cfg.Encoding == EncodingPretty {
		return FromZap(newPrettyLogger(zapConfig)), nil
	}

	jsonLogger, err := zapConfig.Build()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return FromZap(jsonLogger), nil
}

// New creates a Logger with the provided configuration.
func New(cfg Config) (Logger, error) {
	return newLogger(cfg)
}

// FromZap adapts an already built zap logger.
func FromZap(z *zap.Logger) Logger {
	return &logger{z.Sugar()}
}

func (l *logger) Warnx(err error) {
	l.withErrorFields(err).Warn(err.Error())
}

func (l *logger) Errorx(err error) {
	l.withErrorFields(err).Error(err.Error())
}

func (l *logger) Fatalx(err error) {
	l.withErrorFields(err).Fatal(err.Error())
}

func (l *logger) withErrorFields(err error) Logger {
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return l
	}
	return l.With(
		"error_code", e.Code(),
		"error_type", e.Type().String(),
		"error_trace", e.Trace(),
		"error_fields", e.Fields(),
		"error_details", e.Details(),
	)
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{l.SugaredLogger.With(keysAndValues...)}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	data := meta.ExtractMetaFromContext(ctx)

	var fields []any
	for _, k := range meta.Keys() {
		if v, ok := data[k]; ok {
			fields = append(fields, string(k), v)
		}
	}

	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

func (l *logger) Debug(msg any) { l.SugaredLogger.Debug(msg) }
func (l *logger) Info(msg any)  { l.SugaredLogger.Info(msg) }
func (l *logger) Warn(msg any)  { l.SugaredLogger.Warn(msg) }
func (l *logger) Error(msg any) { l.SugaredLogger.Error(msg) }
func (l *logger) Fatal(msg any) { l.SugaredLogger.Fatal(msg) }
