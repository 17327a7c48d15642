// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/tileboard/pkg/types"
)

func TestNewInteractiveWithoutFileIsNop(t *testing.T) {
	logger, err := New(types.LogConfig{Level: "debug"}, true)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewDefaultLevelIsWarn(t *testing.T) {
	logger, err := New(types.LogConfig{}, false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tileboard.log")
	logger, err := New(types.LogConfig{Level: "debug", Format: "json", File: path}, true)
	require.NoError(t, err)

	logger.Named("dispatch").Debug("dispatch complete", zap.String("backend", "document"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "dispatch complete", rec["msg"])
	assert.Equal(t, "dispatch", rec["logger"])
	assert.Equal(t, "document", rec["backend"])
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(types.LogConfig{Level: "loud"}, false)
	assert.ErrorContains(t, err, "parsing log level")

	_, err = New(types.LogConfig{Format: "xml"}, false)
	assert.ErrorContains(t, err, "unknown log format")
}
