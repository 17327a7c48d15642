package types

import "time"

// HTTPConfig holds shared HTTP settings used when posting queries.
type HTTPConfig struct {
	// Timeout bounds a single dispatch round-trip.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent is the User-Agent header sent with each query
	// (e.g. "tileboard/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// DispatchConfig holds the two backend endpoints and transport settings.
type DispatchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// DocumentEndpoint is the URL of the document-upload query service.
	DocumentEndpoint string `json:"document_endpoint" yaml:"document_endpoint" mapstructure:"document_endpoint" validate:"required,url"`

	// DatasourceEndpoint is the URL of the datasource query service.
	DatasourceEndpoint string `json:"datasource_endpoint" yaml:"datasource_endpoint" mapstructure:"datasource_endpoint" validate:"required,url"`
}

// Backend resolves kind to its configured endpoint.
func (c DispatchConfig) Backend(kind BackendKind) Backend {
	if kind == BackendDatasource {
		return Backend{Kind: BackendDatasource, Endpoint: c.DatasourceEndpoint}
	}
	return Backend{Kind: BackendDocument, Endpoint: c.DocumentEndpoint}
}

// BoardConfig holds settings for the tile board.
type BoardConfig struct {
	// MaxGroups caps the number of groups kept on the board (default 20).
	MaxGroups int `json:"max_groups" yaml:"max_groups" mapstructure:"max_groups" validate:"min=1"`

	// DefaultBackend is the backend selected when a session starts.
	DefaultBackend BackendKind `json:"default_backend" yaml:"default_backend" mapstructure:"default_backend"`
}

// HistoryConfig holds settings for the dispatch journal.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables the journal.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig selects the logger encoding, level, and destination.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"omitempty,oneof=console json"`

	// File redirects log output away from stderr. The interactive board
	// discards logs unless this is set.
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// Config groups every section of the tileboard configuration file.
type Config struct {
	Dispatch DispatchConfig `json:"dispatch" yaml:"dispatch" mapstructure:"dispatch"`
	Board    BoardConfig    `json:"board" yaml:"board" mapstructure:"board"`
	History  HistoryConfig  `json:"history" yaml:"history" mapstructure:"history"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}
