// Package logging wraps go.uber.org/zap the way the teacher's cmd/nerd
// entry point does, but scoped to a single optional diagnostic logger
// rather than process-global state. The kernel packages treat a nil
// *zap.Logger as "no logging" and otherwise log only at Debug.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"logos/config"
)

// New builds a *zap.Logger from cfg. Format "json" yields a production
// config; anything else (including the zero value) yields a console
// config, matching the teacher's verbose-flag-driven zap.NewAtomicLevelAt
// pattern in cmd/nerd/main.go.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Encoding = "console"
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// OrNop returns l if non-nil, or a no-op logger otherwise, so callers
// never need a nil check before logging.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
