// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging builds the process-wide slog logger on top of zap.
package logging

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New returns a slog logger backed by a zap core and the zap Sync func.
// mode "prod" selects zap's JSON production config, anything else the
// colored development config.
func New(mode string) (*slog.Logger, func() error) {
	var zapLogger *zap.Logger

	if mode == "prod" {
		zapLogger = zap.Must(zap.NewProduction())
	} else {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapLogger = zap.Must(config.Build())
	}

	return FromCore(zapLogger.Core()), zapLogger.Sync
}

// FromCore wraps an existing zap core
func FromCore(core zapcore.Core) *slog.Logger {
	return slog.New(zapslog.NewHandler(core))
}
