// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tileboard/internal/board"
	"github.com/pdiddy/tileboard/internal/dispatch"
	"github.com/pdiddy/tileboard/internal/history"
	"github.com/pdiddy/tileboard/pkg/types"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	bindEnv()
}

func TestLoadConfigDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultDocumentEndpoint, cfg.Dispatch.DocumentEndpoint)
	assert.Equal(t, defaultDatasourceEndpoint, cfg.Dispatch.DatasourceEndpoint)
	assert.Equal(t, dispatch.DefaultTimeout, cfg.Dispatch.Timeout)
	assert.Equal(t, board.DefaultMaxGroups, cfg.Board.MaxGroups)
	assert.Equal(t, types.BackendDocument, cfg.Board.DefaultBackend)
	assert.Empty(t, cfg.History.Path)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("TILEBOARD_DISPATCH_TIMEOUT", "5s")
	t.Setenv("TILEBOARD_DISPATCH_DOCUMENT_ENDPOINT", "http://docs.internal/query")
	t.Setenv("TILEBOARD_BOARD_DEFAULT_BACKEND", "datasource")
	t.Setenv("TILEBOARD_BOARD_MAX_GROUPS", "7")
	resetViper(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Dispatch.Timeout)
	assert.Equal(t, "http://docs.internal/query", cfg.Dispatch.DocumentEndpoint)
	assert.Equal(t, types.BackendDatasource, cfg.Board.DefaultBackend)
	assert.Equal(t, 7, cfg.Board.MaxGroups)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("TILEBOARD_BOARD_MAX_GROUPS", "0")
	t.Setenv("TILEBOARD_DISPATCH_DATASOURCE_ENDPOINT", "localhost")
	resetViper(t)

	_, err := loadConfig()
	assert.ErrorContains(t, err, "board.max_groups must be at least 1")
	assert.ErrorContains(t, err, "dispatch.datasource_endpoint must be a URL")
}

func TestSelectedBackend(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("backend", "", "")

	kind, err := selectedBackend(cmd, types.BackendDatasource)
	require.NoError(t, err)
	assert.Equal(t, types.BackendDatasource, kind, "config default when the flag is unset")

	require.NoError(t, cmd.Flags().Set("backend", "document"))
	kind, err = selectedBackend(cmd, types.BackendDatasource)
	require.NoError(t, err)
	assert.Equal(t, types.BackendDocument, kind)

	require.NoError(t, cmd.Flags().Set("backend", "spreadsheet"))
	_, err = selectedBackend(cmd, types.BackendDocument)
	assert.Error(t, err)
}

func TestSaveQuestionsWritesOldestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.yaml")
	entries := []history.Entry{
		{ID: 3, Question: "third", Backend: types.BackendDatasource},
		{ID: 2, Question: "second", Backend: types.BackendDocument},
		{ID: 1, Question: "first", Backend: types.BackendDocument},
	}

	require.NoError(t, saveQuestions(path, entries))
	qf, err := dispatch.ReadQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, qf.Questions)
	kind, err := qf.BackendKind()
	require.NoError(t, err)
	assert.Equal(t, types.BackendDatasource, kind)
}

func TestSaveQuestionsRequiresEntries(t *testing.T) {
	err := saveQuestions(filepath.Join(t.TempDir(), "x.yaml"), nil)
	assert.ErrorContains(t, err, "no history entries")
}
