package logger

import (
	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
}

// Global logger for convenience in scripts; everywhere else the injected
// instance should be used.
var L *Logger

func init() {
	L, _ = NewLoggerWithLevel(types.LogLevelDebug)
}

// NewLogger creates a Logger from the service configuration.
func NewLogger(cfg *config.Configuration) (*Logger, error) {
	return NewLoggerWithLevel(cfg.Logging.Level)
}

// NewLoggerWithLevel creates a Logger at the given level.
func NewLoggerWithLevel(level types.LogLevel) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapLevel(level))

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

func zapLevel(level types.LogLevel) zapcore.Level {
	switch level {
	case types.LogLevelDebug:
		return zapcore.DebugLevel
	case types.LogLevelWarn:
		return zapcore.WarnLevel
	case types.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
