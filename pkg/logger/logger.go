package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"voyager/pkg/errors"
)

// Logger is a sugared zap logger that forwards error-level entries to the
// configured tracker. Child loggers created with With share the tracker.
type Logger struct {
	*zap.SugaredLogger
	tracker errors.Tracker
}

var global *Logger

// Init builds the global logger. Production gets JSON output, everything
// else a colored console encoder. Unknown levels fall back to info.
func Init(level, env string) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if env == "production" {
		cfg = zap.NewProductionConfig()
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	zl, err := cfg.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	global = &Logger{SugaredLogger: zl.Sugar()}
	return nil
}

// SetErrorTracker attaches a tracker that receives error-level entries.
func SetErrorTracker(t errors.Tracker) {
	if global != nil {
		global.tracker = t
	}
}

// Get returns the global logger, creating a development logger when Init
// has not run (tests, mainly).
func Get() *Logger {
	if global == nil {
		zl, _ := zap.NewDevelopment()
		global = &Logger{SugaredLogger: zl.Sugar()}
	}
	return global
}

// Sync flushes buffered entries. Call on shutdown.
func Sync() error {
	if global != nil {
		return global.SugaredLogger.Sync()
	}
	return nil
}

// With returns a child logger carrying extra key/value fields.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With(args...),
		tracker:       l.tracker,
	}
}

// Error logs at error level and mirrors the entry to the tracker.
func (l *Logger) Error(args ...interface{}) {
	l.SugaredLogger.Error(args...)
	l.capture(errors.Wrapf(errors.ErrInternal, "%v", args))
}

// Errorf logs a formatted error and mirrors it to the tracker.
func (l *Logger) Errorf(template string, args ...interface{}) {
	l.SugaredLogger.Errorf(template, args...)
	l.capture(fmt.Errorf(template, args...))
}

func (l *Logger) capture(err error) {
	if l.tracker == nil {
		return
	}
	l.tracker.CaptureError(context.Background(), err, map[string]string{
		"component": "logger",
	})
}
