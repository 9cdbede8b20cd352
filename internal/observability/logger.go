package observability

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

// InitLogger replaces the package logger with a production JSON logger at the
// given level ("debug", "info", "warn", "error").
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerFromContext returns the package logger tagged with the request id, if any.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return Logger
	}
	return Logger.With(zap.String("request_id", id))
}
