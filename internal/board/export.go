// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package board

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tileboard/pkg/types"
)

// ExportFormat selects the snapshot encoding.
type ExportFormat string

const (
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
)

// ParseExportFormat validates a format flag. An empty value means YAML.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportYAML, "":
		return ExportYAML, nil
	case ExportJSON:
		return ExportJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use yaml or json", s)
	}
}

// Snapshot is the exported form of a board. Snapshots are written for the
// user to keep; tileboard never loads one back.
type Snapshot struct {
	ExportedAt time.Time     `json:"exported_at" yaml:"exported_at"`
	Groups     []types.Group `json:"groups" yaml:"groups"`
}

// Export encodes groups, in display order, to w.
func Export(groups []types.Group, format ExportFormat, w io.Writer) error {
	snap := Snapshot{ExportedAt: time.Now().UTC(), Groups: groups}
	if snap.Groups == nil {
		snap.Groups = []types.Group{}
	}

	switch format {
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	case ExportYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteExport writes a snapshot of groups to path, creating parent
// directories as needed.
func WriteExport(path string, groups []types.Group, format ExportFormat) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Export(groups, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
