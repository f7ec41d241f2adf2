package main

import (
	"fmt"

	"github.com/jensneuse/abstractlogger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the abstractlogger.Logger the plan subcommand's
// planner.Configuration is wired with, backed by a zap sink.
func newLogger(level string) (abstractlogger.Logger, func(), error) {
	zapLevel, err := parseZapLevel(level)
	if err != nil {
		return nil, nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	return abstractlogger.NewZapLogger(zapLogger, abstractlogger.DebugLevel), func() { _ = zapLogger.Sync() }, nil
}

func parseZapLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}
