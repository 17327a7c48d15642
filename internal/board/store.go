// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package board holds the in-memory tile board: an ordered, capped list of
// groups and every mutation that can be applied to it.
//
// Each mutating method leaves the board with no empty groups and each tile
// in exactly one group. Operations that target ids no longer on the board
// are no-ops that report false; they are never errors. A Store is not safe
// for concurrent use: callers mutate it from a single goroutine.
package board

import (
	"go.uber.org/zap"

	"github.com/pdiddy/tileboard/pkg/types"
)

// DefaultMaxGroups is the number of groups kept when no cap is configured.
const DefaultMaxGroups = 20

// Store is the ordered collection of groups, most recently created first.
type Store struct {
	groups    []types.Group
	ids       IDGenerator
	maxGroups int
	logger    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid-backed identity generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithMaxGroups sets the group cap. Values below 1 keep the default.
func WithMaxGroups(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxGroups = n
		}
	}
}

// WithLogger attaches a logger. Not-found operations are logged at debug.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l.Named("board") }
}

// NewStore returns an empty board.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ids:       UUIDGenerator{},
		maxGroups: DefaultMaxGroups,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxGroups returns the configured cap.
func (s *Store) MaxGroups() int { return s.maxGroups }

// NewTile mints a tile with a fresh id. The tile is not on the board until
// it is passed to AddGroup.
func (s *Store) NewTile(question, content string) types.Tile {
	return types.Tile{ID: s.ids.NewID(), Question: question, Content: content}
}

// AddGroup wraps tile in a new "Untitled" group, places it first, and drops
// the oldest groups beyond the cap. It always succeeds.
func (s *Store) AddGroup(tile types.Tile) types.Group {
	g := types.Group{
		ID:    s.ids.NewID(),
		Name:  types.DefaultGroupName,
		Tiles: []types.Tile{tile},
	}

	groups := make([]types.Group, 0, len(s.groups)+1)
	groups = append(groups, g)
	groups = append(groups, s.groups...)
	if len(groups) > s.maxGroups {
		for _, dropped := range groups[s.maxGroups:] {
			s.logger.Debug("group dropped by cap",
				zap.String("group_id", dropped.ID),
				zap.Int("max_groups", s.maxGroups))
		}
		groups = groups[:s.maxGroups]
	}
	s.groups = groups
	return g.Clone()
}

// RenameGroup replaces the name of groupID. It reports false when the group
// is not on the board, for example after it was pruned.
func (s *Store) RenameGroup(groupID, name string) bool {
	i := s.groupIndex(groupID)
	if i < 0 {
		s.logger.Debug("rename ignored: group not found", zap.String("group_id", groupID))
		return false
	}
	s.groups[i].Name = name
	return true
}

// RemoveTile deletes tileID from every group and prunes groups left empty.
// groupID names the group the request came from; the scan is not limited
// to it. It reports false when the tile is not on the board.
func (s *Store) RemoveTile(groupID, tileID string) bool {
	found := false
	groups := make([]types.Group, 0, len(s.groups))
	for _, g := range s.groups {
		if g.IndexOf(tileID) < 0 {
			groups = append(groups, g)
			continue
		}
		found = true
		kept := make([]types.Tile, 0, len(g.Tiles))
		for _, t := range g.Tiles {
			if t.ID != tileID {
				kept = append(kept, t)
			}
		}
		g.Tiles = kept
		groups = append(groups, g)
	}
	if !found {
		s.logger.Debug("remove ignored: tile not found",
			zap.String("group_id", groupID),
			zap.String("tile_id", tileID))
		return false
	}
	s.groups = prune(groups)
	return true
}

// TransferTile moves tileID from the group holding it to the end of
// targetGroupID, then prunes. Nothing changes when either group is missing
// or when the tile already lives in the target.
func (s *Store) TransferTile(tileID, targetGroupID string) bool {
	src, pos := s.locateTile(tileID)
	dst := s.groupIndex(targetGroupID)
	if src < 0 || dst < 0 {
		s.logger.Debug("transfer ignored: tile or target not found",
			zap.String("tile_id", tileID),
			zap.String("target_group_id", targetGroupID))
		return false
	}
	if src == dst {
		return false
	}

	groups := make([]types.Group, len(s.groups))
	copy(groups, s.groups)

	tile := groups[src].Tiles[pos]

	source := groups[src].Clone()
	source.Tiles = append(source.Tiles[:pos], source.Tiles[pos+1:]...)
	groups[src] = source

	target := groups[dst].Clone()
	target.Tiles = append(target.Tiles, tile)
	groups[dst] = target

	s.groups = prune(groups)
	s.logger.Debug("tile transferred",
		zap.String("tile_id", tileID),
		zap.String("source_group_id", source.ID),
		zap.String("target_group_id", target.ID))
	return true
}

// Groups returns a deep copy of the board in display order.
func (s *Store) Groups() []types.Group {
	out := make([]types.Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.Clone()
	}
	return out
}

// Len returns the number of groups on the board.
func (s *Store) Len() int { return len(s.groups) }

// Group returns a copy of the group with id.
func (s *Store) Group(id string) (types.Group, bool) {
	i := s.groupIndex(id)
	if i < 0 {
		return types.Group{}, false
	}
	return s.groups[i].Clone(), true
}

// FindTile returns the tile with tileID and the id of the group holding it.
func (s *Store) FindTile(tileID string) (types.Tile, string, bool) {
	gi, ti := s.locateTile(tileID)
	if gi < 0 {
		return types.Tile{}, "", false
	}
	return s.groups[gi].Tiles[ti], s.groups[gi].ID, true
}

func (s *Store) groupIndex(id string) int {
	for i, g := range s.groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// locateTile returns the group index and tile index of tileID, or -1, -1.
func (s *Store) locateTile(tileID string) (int, int) {
	for gi, g := range s.groups {
		if ti := g.IndexOf(tileID); ti >= 0 {
			return gi, ti
		}
	}
	return -1, -1
}

// prune drops groups with no tiles, preserving order.
func prune(groups []types.Group) []types.Group {
	out := groups[:0]
	for _, g := range groups {
		if len(g.Tiles) > 0 {
			out = append(out, g)
		}
	}
	return out
}
