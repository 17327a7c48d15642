// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tileboard/internal/board"
	"github.com/pdiddy/tileboard/pkg/types"
)

// recorder captures TransferTile calls.
type recorder struct {
	calls  [][2]string
	result bool
}

func (r *recorder) TransferTile(tileID, targetGroupID string) bool {
	r.calls = append(r.calls, [2]string{tileID, targetGroupID})
	return r.result
}

func TestPickUpAndRelease(t *testing.T) {
	rec := &recorder{result: true}
	c := NewController(rec)
	assert.Equal(t, Idle, c.State())

	c.PickUp("t1")
	assert.Equal(t, Dragging, c.State())
	assert.Equal(t, "t1", c.ActiveTileID())

	assert.Equal(t, Moved, c.Release("g2"))
	assert.Equal(t, Idle, c.State())
	assert.Empty(t, c.ActiveTileID())
	assert.Equal(t, [][2]string{{"t1", "g2"}}, rec.calls)
}

func TestDropGuards(t *testing.T) {
	tests := []struct {
		name     string
		activeID string
		overID   string
	}{
		{"released outside any target", "t1", ""},
		{"dropped onto itself", "t1", "t1"},
		{"no active tile", "", "g1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{result: true}
			c := NewController(rec)
			c.PickUp("t1")

			assert.Equal(t, Ignored, c.Drop(tt.activeID, tt.overID))
			assert.Empty(t, rec.calls, "store must not be called")
			assert.Equal(t, Idle, c.State())
		})
	}
}

func TestDropRejectedByStore(t *testing.T) {
	rec := &recorder{result: false}
	c := NewController(rec)
	c.PickUp("t1")
	assert.Equal(t, Rejected, c.Drop("t1", "g1"))
	assert.Len(t, rec.calls, 1)
	assert.Equal(t, Idle, c.State())
}

func TestReleaseWhileIdleIsIgnored(t *testing.T) {
	rec := &recorder{result: true}
	c := NewController(rec)
	assert.Equal(t, Ignored, c.Release("g1"))
	assert.Empty(t, rec.calls)
}

func TestCancel(t *testing.T) {
	rec := &recorder{result: true}
	c := NewController(rec)
	c.PickUp("t1")
	c.Cancel()
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, Ignored, c.Release("g1"))
	assert.Empty(t, rec.calls)
}

func TestPickUpReplacesActiveTile(t *testing.T) {
	c := NewController(&recorder{})
	c.PickUp("t1")
	c.PickUp("t2")
	assert.Equal(t, "t2", c.ActiveTileID())
	c.PickUp("")
	assert.Equal(t, "t2", c.ActiveTileID(), "empty pick-up is ignored")
}

func TestControllerDrivesStore(t *testing.T) {
	store := board.NewStore(board.WithIDGenerator(&board.SequenceGenerator{Prefix: "g"}))
	store.AddGroup(types.Tile{ID: "t1"})
	store.AddGroup(types.Tile{ID: "t2"})
	c := NewController(store)

	// Self-drop onto the tile's own group leaves the board unchanged.
	c.PickUp("t1")
	assert.Equal(t, Rejected, c.Release("g-1"))
	assert.Equal(t, 2, store.Len())

	c.PickUp("t1")
	assert.Equal(t, Moved, c.Release("g-2"))
	require.Equal(t, 1, store.Len())
	g, ok := store.Group("g-2")
	require.True(t, ok)
	assert.Equal(t, []types.Tile{{ID: "t2"}, {ID: "t1"}}, g.Tiles)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "moved", Moved.String())
	assert.Equal(t, "ignored", Ignored.String())
	assert.Equal(t, "rejected", Rejected.String())
}
