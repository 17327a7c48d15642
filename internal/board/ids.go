// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package board

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator supplies unique ids for new tiles and groups.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random (version 4) UUID strings.
type UUIDGenerator struct{}

// NewID returns a new random UUID.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SequenceGenerator issues prefix-1, prefix-2, ... and is used where
// stable ids make output reproducible (tests, batch exports).
type SequenceGenerator struct {
	Prefix string
	n      atomic.Int64
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() string {
	return fmt.Sprintf("%s-%d", g.Prefix, g.n.Add(1))
}
