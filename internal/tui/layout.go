// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/pdiddy/tileboard/pkg/types"
)

// Screen geometry. The board is a grid of fixed-width group cards between
// a fixed header and footer; every tile takes tileLines rows inside its
// card, below a one-row title.
const (
	headerLines = 4
	footerLines = 2
	cardWidth   = 40
	cardGap     = 1
	tileLines   = 2
)

// cardBox is one group's card in board coordinates: x from the left edge,
// y from the top of the unscrolled board.
type cardBox struct {
	groupID string
	tileIDs []string
	x, y    int
	w, h    int
}

func cardHeight(g types.Group) int {
	return 2 + 1 + len(g.Tiles)*tileLines
}

// columns is how many cards fit side by side in width.
func columns(width int) int {
	n := (width + cardGap) / (cardWidth + cardGap)
	if n < 1 {
		return 1
	}
	return n
}

// layoutCards places groups in display order, left to right then top to
// bottom. A row is as tall as its tallest card.
func layoutCards(groups []types.Group, width int) []cardBox {
	cols := columns(width)
	boxes := make([]cardBox, 0, len(groups))
	y, rowHeight := 0, 0
	for i, g := range groups {
		col := i % cols
		if col == 0 && i > 0 {
			y += rowHeight
			rowHeight = 0
		}
		ids := make([]string, len(g.Tiles))
		for j, t := range g.Tiles {
			ids[j] = t.ID
		}
		h := cardHeight(g)
		boxes = append(boxes, cardBox{
			groupID: g.ID,
			tileIDs: ids,
			x:       col * (cardWidth + cardGap),
			y:       y,
			w:       cardWidth,
			h:       h,
		})
		rowHeight = max(rowHeight, h)
	}
	return boxes
}

// boardExtent is the height of the whole unscrolled board.
func boardExtent(boxes []cardBox) int {
	extent := 0
	for _, b := range boxes {
		extent = max(extent, b.y+b.h)
	}
	return extent
}

// hitTest maps a board coordinate to the card under it and, when the point
// is on a tile row inside the border, that tile.
func hitTest(boxes []cardBox, x, y int) (groupID, tileID string) {
	for _, b := range boxes {
		if x < b.x || x >= b.x+b.w || y < b.y || y >= b.y+b.h {
			continue
		}
		row := y - b.y - 2
		if row >= 0 && x > b.x && x < b.x+b.w-1 {
			if i := row / tileLines; i < len(b.tileIDs) {
				tileID = b.tileIDs[i]
			}
		}
		return b.groupID, tileID
	}
	return "", ""
}

// oneLine collapses runs of whitespace, including newlines, to single
// spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// padRight fills s with spaces up to width display cells.
func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
