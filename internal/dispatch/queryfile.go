// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tileboard/pkg/types"
)

// QueryFile is a saved list of questions to run against one backend.
//
//	backend: document
//	questions:
//	  - what is a tile?
//	  - how are groups pruned?
type QueryFile struct {
	Backend   string   `yaml:"backend,omitempty"`
	Questions []string `yaml:"questions"`
}

// ReadQueryFile loads a query file from disk. Blank questions are dropped.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}

	kept := qf.Questions[:0]
	for _, q := range qf.Questions {
		if q = strings.TrimSpace(q); q != "" {
			kept = append(kept, q)
		}
	}
	qf.Questions = kept
	if len(qf.Questions) == 0 {
		return nil, fmt.Errorf("query file %s has no questions", path)
	}
	return &qf, nil
}

// WriteQueryFile saves questions for later batch runs.
func WriteQueryFile(path string, kind types.BackendKind, questions []string) error {
	data, err := yaml.Marshal(&QueryFile{Backend: string(kind), Questions: questions})
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// BackendKind resolves the file's backend name; an empty name is document.
func (qf QueryFile) BackendKind() (types.BackendKind, error) {
	return types.ParseBackendKind(qf.Backend)
}
