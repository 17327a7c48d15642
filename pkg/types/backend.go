// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// BackendKind identifies which of the two query services answers a dispatch.
// The kind decides how the response is normalized into tile content.
type BackendKind string

const (
	// BackendDocument is the document-upload service. Its responses carry
	// ranked top_matches and optionally a flat answer.
	BackendDocument BackendKind = "document"

	// BackendDatasource is the datasource service. Only its answer field
	// is used.
	BackendDatasource BackendKind = "datasource"
)

// ParseBackendKind validates a user-supplied backend name.
func ParseBackendKind(s string) (BackendKind, error) {
	switch BackendKind(strings.ToLower(strings.TrimSpace(s))) {
	case BackendDocument, "":
		return BackendDocument, nil
	case BackendDatasource:
		return BackendDatasource, nil
	default:
		return "", fmt.Errorf("unknown backend %q: use document or datasource", s)
	}
}

// Toggle returns the other backend kind.
func (k BackendKind) Toggle() BackendKind {
	if k == BackendDatasource {
		return BackendDocument
	}
	return BackendDatasource
}

// Label returns the human-readable name shown in the UI.
func (k BackendKind) Label() string {
	if k == BackendDatasource {
		return "Datasource"
	}
	return "Document Upload"
}

// Backend is a resolved dispatch target: a kind plus the opaque endpoint
// URL the query is posted to.
type Backend struct {
	Kind     BackendKind `json:"kind" yaml:"kind"`
	Endpoint string      `json:"endpoint" yaml:"endpoint"`
}
