// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zap logger shared by tileboard components.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/tileboard/pkg/types"
)

// New creates a logger from cfg. Format "json" uses zap's production
// encoder; anything else uses the development console encoder. Output goes
// to cfg.File when set, otherwise to stderr.
//
// When interactive is true the terminal belongs to the board UI, so
// without a log file New returns a no-op logger instead of writing to
// stderr.
func New(cfg types.LogConfig, interactive bool) (*zap.Logger, error) {
	if interactive && cfg.File == "" {
		return zap.NewNop(), nil
	}

	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.Level != "" {
		parsed, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "console", "":
		zcfg = zap.NewDevelopmentConfig()
		zcfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q: use console or json", cfg.Format)
	}
	zcfg.Level = level

	if cfg.File != "" {
		zcfg.OutputPaths = []string{cfg.File}
		zcfg.ErrorOutputPaths = []string{cfg.File}
	} else {
		zcfg.OutputPaths = []string{"stderr"}
		zcfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
