package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Fields carries structured key/value pairs for a log entry.
type Fields map[string]interface{}

// Logger is the structured logging surface shared by services, the gateway
// and the pipeline.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
	With(fields Fields) Logger
	WithError(err error) Logger
}

// NewZap builds a zap logger. "json" selects the production encoder,
// anything else the console one.
func NewZap(levelStr, format string) *zap.Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

type zapLogger struct {
	l *zap.Logger
}

func New(levelStr, format string) Logger {
	return &zapLogger{l: NewZap(levelStr, format)}
}

func FromZap(l *zap.Logger) Logger {
	return &zapLogger{l: l}
}

func NewTest(t testing.TB) Logger {
	return &zapLogger{l: zaptest.NewLogger(t)}
}

func NewNop() Logger {
	return &zapLogger{l: zap.NewNop()}
}

func (z *zapLogger) Debug(msg string, fields Fields) { z.l.Debug(msg, toZap(fields)...) }
func (z *zapLogger) Info(msg string, fields Fields)  { z.l.Info(msg, toZap(fields)...) }
func (z *zapLogger) Warn(msg string, fields Fields)  { z.l.Warn(msg, toZap(fields)...) }
func (z *zapLogger) Error(msg string, fields Fields) { z.l.Error(msg, toZap(fields)...) }

func (z *zapLogger) With(fields Fields) Logger {
	return &zapLogger{l: z.l.With(toZap(fields)...)}
}

func (z *zapLogger) WithError(err error) Logger {
	return &zapLogger{l: z.l.With(zap.Error(err))}
}

func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
