// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for tileboard: the tile and
// group records held by the board, the backend descriptors used by the
// dispatcher, and the configuration structs decoded by the CLI.
package types

// DefaultGroupName is the label a newly created group starts with.
const DefaultGroupName = "Untitled"

// Tile is one captured query/result pair. A tile is immutable once created
// and belongs to exactly one Group at any time.
type Tile struct {
	// ID is an opaque unique identifier assigned at creation.
	ID string `json:"id" yaml:"id"`

	// Question is the literal query text the user submitted.
	Question string `json:"question" yaml:"question"`

	// Content is the normalized result text returned by the dispatcher.
	Content string `json:"content" yaml:"content"`
}

// Group is a named, ordered collection of tiles. Tiles are kept in append
// order: the most recently added or transferred tile is last.
type Group struct {
	// ID is an opaque unique identifier assigned at creation.
	ID string `json:"id" yaml:"id"`

	// Name is the display label (default "Untitled").
	Name string `json:"name" yaml:"name"`

	// Tiles holds the group's tiles in append order.
	Tiles []Tile `json:"tiles" yaml:"tiles"`
}

// Clone returns a copy of g whose Tiles slice does not alias g's.
func (g Group) Clone() Group {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	g.Tiles = tiles
	return g
}

// IndexOf returns the position of tileID within the group, or -1.
func (g Group) IndexOf(tileID string) int {
	for i, t := range g.Tiles {
		if t.ID == tileID {
			return i
		}
	}
	return -1
}
