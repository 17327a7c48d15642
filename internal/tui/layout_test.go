// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tileboard/pkg/types"
)

func group(id string, tileIDs ...string) types.Group {
	g := types.Group{ID: id, Name: id}
	for _, t := range tileIDs {
		g.Tiles = append(g.Tiles, types.Tile{ID: t})
	}
	return g
}

func TestColumns(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 1},
		{39, 1},
		{40, 1},
		{81, 2},
		{120, 2},
		{123, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, columns(tt.width), "width %d", tt.width)
	}
}

func TestLayoutCardsWrapsRows(t *testing.T) {
	groups := []types.Group{
		group("a", "a1", "a2", "a3"),
		group("b", "b1"),
		group("c", "c1"),
	}
	boxes := layoutCards(groups, 82)
	require.Len(t, boxes, 3)

	assert.Equal(t, cardBox{groupID: "a", tileIDs: []string{"a1", "a2", "a3"}, x: 0, y: 0, w: cardWidth, h: 9}, boxes[0])
	assert.Equal(t, cardWidth+cardGap, boxes[1].x)
	assert.Equal(t, 0, boxes[1].y)
	assert.Equal(t, 5, boxes[1].h)

	// The second row starts below the tallest card of the first.
	assert.Equal(t, 0, boxes[2].x)
	assert.Equal(t, 9, boxes[2].y)
	assert.Equal(t, 14, boardExtent(boxes))
}

func TestHitTest(t *testing.T) {
	boxes := layoutCards([]types.Group{group("a", "a1", "a2"), group("b", "b1")}, 82)

	tests := []struct {
		name      string
		x, y      int
		wantGroup string
		wantTile  string
	}{
		{"top border", 5, 0, "a", ""},
		{"title row", 5, 1, "a", ""},
		{"first tile", 5, 2, "a", "a1"},
		{"first tile second line", 5, 3, "a", "a1"},
		{"second tile", 5, 4, "a", "a2"},
		{"left border column", 0, 2, "a", ""},
		{"bottom border", 5, 6, "a", ""},
		{"gap between cards", cardWidth, 2, "", ""},
		{"second card tile", cardWidth + cardGap + 3, 2, "b", "b1"},
		{"below shorter card", cardWidth + cardGap + 3, 6, "", ""},
		{"outside", 200, 2, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, tl := hitTest(boxes, tt.x, tt.y)
			assert.Equal(t, tt.wantGroup, g)
			assert.Equal(t, tt.wantTile, tl)
		})
	}
}

func TestOneLineAndTruncate(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("  a\n\nb\t c "))
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "ab   ", padRight("ab", 5))
}
