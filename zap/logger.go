// Package zap decorates eucatalog services with structured logging.
package zap

import (
	"github.com/timarques/eucatalog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a development (console) or production (JSON) logger at
// the given level ("debug", "info", "warn" or "error").
func NewLogger(development bool, level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, eucatalog.Errorf(eucatalog.EINVALID, "unknown log level %q", level)
		}
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"

	logger, err := cfg.Build()
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EINVALID, "build logger: %v", err)
	}
	return logger, nil
}
