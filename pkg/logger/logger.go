// Package logger builds the zap.Logger used across cmd/matchcore and
// internal/matching for structured, JSON-encoded logging.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger at the requested level ("debug", "info", "warn",
// "error"; anything else falls back to "info"), writing ISO8601-stamped
// JSON lines to stdout with caller annotation.
func New(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapLevel,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// WithSlot returns a child logger annotated with a symbol and its resolved
// book-slot index, so every admission-rejection or background-insert-
// escalation line emitted for that symbol carries the same two fields and
// can be correlated across a slot's lifetime without re-stating them at
// each call site.
func WithSlot(base *zap.Logger, symbol string, slot int) *zap.Logger {
	if base == nil {
		return nil
	}
	return base.With(zap.String("symbol", symbol), zap.Int("slot", slot))
}
