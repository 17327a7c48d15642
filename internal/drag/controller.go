// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package drag interprets a single drag gesture over the board: a tile is
// picked up, then released over a group or over nothing. A valid drop is
// forwarded to the board as a tile transfer. The controller only knows
// ids; the board owns every rule about what a transfer does.
package drag

// Transferer moves a tile into a target group. *board.Store implements it.
type Transferer interface {
	TransferTile(tileID, targetGroupID string) bool
}

// State is the gesture state.
type State int

const (
	// Idle means no tile is being dragged.
	Idle State = iota
	// Dragging means a tile has been picked up and not yet released.
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Outcome describes what a drop did.
type Outcome int

const (
	// Moved means the transfer was forwarded and the board changed.
	Moved Outcome = iota
	// Ignored means the drop had no target or targeted the tile itself.
	Ignored
	// Rejected means the board declined the transfer (unknown ids or a
	// drop onto the tile's own group).
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ignored:
		return "ignored"
	default:
		return "rejected"
	}
}

// Controller tracks one gesture at a time.
type Controller struct {
	target Transferer
	state  State
	active string
}

// NewController returns an idle controller that forwards drops to target.
func NewController(target Transferer) *Controller {
	return &Controller{target: target}
}

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// ActiveTileID returns the tile being dragged, or "" when idle.
func (c *Controller) ActiveTileID() string { return c.active }

// PickUp starts dragging tileID. Picking up while already dragging
// replaces the active tile.
func (c *Controller) PickUp(tileID string) {
	if tileID == "" {
		return
	}
	c.state = Dragging
	c.active = tileID
}

// Drop ends the gesture. overID is the drop target's id, or "" when the
// tile was released outside every target. Drops with no target, or onto
// the dragged tile itself, do nothing.
func (c *Controller) Drop(activeID, overID string) Outcome {
	c.state = Idle
	c.active = ""

	if activeID == "" || overID == "" || overID == activeID {
		return Ignored
	}
	if c.target.TransferTile(activeID, overID) {
		return Moved
	}
	return Rejected
}

// Release drops the currently active tile onto overID. It is Ignored when
// nothing is being dragged.
func (c *Controller) Release(overID string) Outcome {
	if c.state != Dragging {
		return Ignored
	}
	return c.Drop(c.active, overID)
}

// Cancel abandons the gesture without touching the board.
func (c *Controller) Cancel() {
	c.state = Idle
	c.active = ""
}
