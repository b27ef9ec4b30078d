// Package logging provides the structured logger used across the planner, search
// and smoother packages. It is a thin, leveled wrapper around zap's SugaredLogger
// so call sites can log with either a printf-style or a key/value style without
// depending on zap directly.
package logging

import (
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the interface used throughout this module for diagnostics. Fatal*
// methods log and then terminate the process; they are reserved for internal
// invariant violations, not for runtime/configuration errors a caller can recover
// from.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})

	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})

	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})

	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})

	SetLevel(level Level)
	GetLevel() Level

	// Named returns a descendant logger with the given name appended, e.g.
	// "planner" -> "planner.astar".
	Named(name string) Logger
}

type impl struct {
	name     string
	level    AtomicLevel
	zapLevel zap.AtomicLevel
	sugar    *zap.SugaredLogger
}

// NewZapConfig mirrors the console encoder this project's authors favor: colored
// levels, ISO8601 timestamps, and no stack traces at any level.
// zapLevel is shared with the Logger so SetLevel can adjust the underlying
// core's own floor, not just the Go-side shouldLog gate.
func NewZapConfig(zapLevel zap.AtomicLevel) zap.Config {
	return zap.Config{
		Level:    zapLevel,
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a Logger that emits Info+ logs to stdout.
func NewLogger(name string) Logger {
	return newImpl(name, INFO)
}

// NewDebugLogger returns a Logger that emits Debug+ logs to stdout.
func NewDebugLogger(name string) Logger {
	return newImpl(name, DEBUG)
}

// NewTestLogger returns a Logger suitable for use in *testing.T-scoped tests; it
// logs at Debug level and is not shared across tests.
func NewTestLogger(tb testing.TB) Logger {
	return newImpl(tb.Name(), DEBUG)
}

func newImpl(name string, level Level) *impl {
	zapLevel := zap.NewAtomicLevelAt(level.AsZap())
	built, err := NewZapConfig(zapLevel).Build(zap.AddCallerSkip(1))
	if err != nil {
		// This can only happen from a malformed static config above; it is a bug, not
		// a runtime condition.
		panic(fmt.Sprintf("logging: failed to build zap logger: %v", err))
	}
	return &impl{
		name:     name,
		level:    NewAtomicLevelAt(level),
		zapLevel: zapLevel,
		sugar:    built.Sugar().Named(name),
	}
}

// SetLevel updates both the Go-side shouldLog gate and the underlying zap
// core's own floor (via Level.AsZap), so raising verbosity after construction
// (e.g. a CLI's -v flag) actually reaches zap rather than being silently
// dropped by a core built at a stricter level.
func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
	imp.zapLevel.SetLevel(level.AsZap())
}

func (imp *impl) GetLevel() Level { return imp.level.Get() }

func (imp *impl) Named(name string) Logger {
	newName := name
	if imp.name != "" {
		newName = imp.name + "." + name
	}
	return &impl{
		name:     newName,
		level:    NewAtomicLevelAt(imp.level.Get()),
		zapLevel: imp.zapLevel,
		sugar:    imp.sugar.Named(name),
	}
}

func (imp *impl) shouldLog(level Level) bool { return level >= imp.level.Get() }

func (imp *impl) Debug(args ...interface{}) {
	if imp.shouldLog(DEBUG) {
		imp.sugar.Debug(args...)
	}
}

func (imp *impl) Debugf(template string, args ...interface{}) {
	if imp.shouldLog(DEBUG) {
		imp.sugar.Debugf(template, args...)
	}
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	if imp.shouldLog(DEBUG) {
		imp.sugar.Debugw(msg, keysAndValues...)
	}
}

func (imp *impl) Info(args ...interface{}) {
	if imp.shouldLog(INFO) {
		imp.sugar.Info(args...)
	}
}

func (imp *impl) Infof(template string, args ...interface{}) {
	if imp.shouldLog(INFO) {
		imp.sugar.Infof(template, args...)
	}
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	if imp.shouldLog(INFO) {
		imp.sugar.Infow(msg, keysAndValues...)
	}
}

func (imp *impl) Warn(args ...interface{}) {
	if imp.shouldLog(WARN) {
		imp.sugar.Warn(args...)
	}
}

func (imp *impl) Warnf(template string, args ...interface{}) {
	if imp.shouldLog(WARN) {
		imp.sugar.Warnf(template, args...)
	}
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	if imp.shouldLog(WARN) {
		imp.sugar.Warnw(msg, keysAndValues...)
	}
}

func (imp *impl) Error(args ...interface{}) {
	if imp.shouldLog(ERROR) {
		imp.sugar.Error(args...)
	}
}

func (imp *impl) Errorf(template string, args ...interface{}) {
	if imp.shouldLog(ERROR) {
		imp.sugar.Errorf(template, args...)
	}
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	if imp.shouldLog(ERROR) {
		imp.sugar.Errorw(msg, keysAndValues...)
	}
}

// Fatal* log at error level and then exit the process. Reserved for internal
// invariant violations (see the Errors paragraph in SPEC_FULL.md): a bug, not a
// runtime condition that should be recovered from.
func (imp *impl) Fatal(args ...interface{}) {
	imp.sugar.Error(args...)
	os.Exit(1)
}

func (imp *impl) Fatalf(template string, args ...interface{}) {
	imp.sugar.Errorf(template, args...)
	os.Exit(1)
}

func (imp *impl) Fatalw(msg string, keysAndValues ...interface{}) {
	imp.sugar.Errorw(msg, keysAndValues...)
	os.Exit(1)
}
