// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all key bindings for the board.
type KeyMap struct {
	// Search box.
	Submit        key.Binding
	ToggleBackend key.Binding

	// Focus switching.
	FocusToggle key.Binding
	FocusSearch key.Binding

	// Board navigation. Up and Down walk tiles and spill into the
	// neighbouring group; Left and Right jump whole groups.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Moving tiles.
	Grab   key.Binding // Pick up the selected tile, or drop the held one.
	Drop   key.Binding
	Cancel key.Binding

	// Board mutations.
	Rename key.Binding
	Remove key.Binding
	Export key.Binding

	Quit      key.Binding
	QuitBoard key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "search"),
	),
	ToggleBackend: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("C-b", "backend"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("Tab", "switch focus"),
	),
	FocusSearch: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev group"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next group"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "move"),
	),
	Drop: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "drop"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("C-e", "export"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
	QuitBoard: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// helpLine renders bindings as "key desc · key desc".
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
