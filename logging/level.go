package logging

import (
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

// Level describes the severity of a single log line.
type Level int

const (
	// DEBUG is for development-time diagnostics.
	DEBUG Level = iota
	// INFO is for normal operational messages.
	INFO
	// WARN is for recoverable, degraded-mode conditions.
	WARN
	// ERROR is for failed operations that do not halt the process.
	ERROR
)

// AsZap converts a Level to the equivalent zapcore.Level.
func (level Level) AsZap() zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (level Level) String() string {
	switch level {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	default:
		return "Unknown"
	}
}

// AtomicLevel is a Level that may be read and written concurrently.
type AtomicLevel struct {
	level atomic.Int32
}

// NewAtomicLevelAt constructs an AtomicLevel set to the given Level.
func NewAtomicLevelAt(level Level) AtomicLevel {
	var atomicLevel AtomicLevel
	atomicLevel.Set(level)
	return atomicLevel
}

// Set updates the level.
func (al *AtomicLevel) Set(level Level) {
	al.level.Store(int32(level))
}

// Get returns the current level.
func (al *AtomicLevel) Get() Level {
	return Level(al.level.Load())
}
