// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/tileboard/internal/board"
	"github.com/pdiddy/tileboard/internal/dispatch"
	"github.com/pdiddy/tileboard/internal/history"
	"github.com/pdiddy/tileboard/internal/logging"
	"github.com/pdiddy/tileboard/internal/session"
	"github.com/pdiddy/tileboard/pkg/types"
)

// Default query service endpoints.
const (
	defaultDocumentEndpoint   = "http://localhost:5000/query"
	defaultDatasourceEndpoint = "http://localhost:8000/query"
)

func setDefaults() {
	viper.SetDefault("dispatch.document_endpoint", defaultDocumentEndpoint)
	viper.SetDefault("dispatch.datasource_endpoint", defaultDatasourceEndpoint)
	viper.SetDefault("dispatch.timeout", dispatch.DefaultTimeout)
	viper.SetDefault("dispatch.user_agent", "tileboard/"+version)
	viper.SetDefault("board.max_groups", board.DefaultMaxGroups)
	viper.SetDefault("board.default_backend", string(types.BackendDocument))
	viper.SetDefault("history.path", "")
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.file", "")
}

// bindEnv maps TILEBOARD_SECTION_KEY variables onto section.key.
func bindEnv() {
	viper.SetEnvPrefix("TILEBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// loadConfig decodes and validates the merged flags, environment, and
// config file.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// selectedBackend returns the --backend flag when given, else fallback.
func selectedBackend(cmd *cobra.Command, fallback types.BackendKind) (types.BackendKind, error) {
	name := string(fallback)
	if f := cmd.Flags().Lookup("backend"); f != nil && f.Changed {
		name = f.Value.String()
	}
	return types.ParseBackendKind(name)
}

// app is the wiring shared by the board, query, and batch commands.
type app struct {
	cfg        types.Config
	logger     *zap.Logger
	journal    *history.Journal
	dispatcher *dispatch.Dispatcher
	session    *session.Session
}

// newApp builds a session over a fresh board. interactive routes logs
// away from the terminal.
func newApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log, interactive)
	if err != nil {
		return nil, err
	}
	kind, err := selectedBackend(cmd, cfg.Board.DefaultBackend)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	opts := []session.Option{session.WithBackend(kind), session.WithLogger(logger)}
	if cfg.History.Path != "" {
		a.journal, err = history.Open(cfg.History)
		if err != nil {
			return nil, err
		}
		opts = append(opts, session.WithRecorder(a.journal))
	}

	store := board.NewStore(
		board.WithMaxGroups(cfg.Board.MaxGroups),
		board.WithLogger(logger))
	a.dispatcher = dispatch.NewDispatcher(cfg.Dispatch.HTTPConfig, dispatch.WithLogger(logger))
	a.session = session.New(store, a.dispatcher, cfg.Dispatch, opts...)
	return a, nil
}

func (a *app) Close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Warn("closing history", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
