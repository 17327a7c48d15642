// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/tileboard/internal/drag"
	"github.com/pdiddy/tileboard/pkg/types"
)

// View renders the header, the visible slice of the board, and the footer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	groups := m.groups()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader()...)
	lines = append(lines, m.renderBoard(groups)...)
	lines = append(lines, m.renderFooter(groups)...)
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader() []string {
	kind := m.session.BackendKind()
	backend := lipgloss.NewStyle().Bold(true).Foreground(m.theme.backendColor(kind)).Render(kind.Label())
	title := m.styles.title.Render("tileboard") + "  " + backend +
		m.styles.faint.Render("  "+m.keys.ToggleBackend.Help().Key+" to switch")
	if m.pending > 0 {
		title += "  " + m.spinner.View() + m.styles.faint.Render(fmt.Sprintf(" %d pending", m.pending))
	}

	errLine := ""
	if msg := m.session.ServerError(); msg != "" {
		errLine = m.styles.err.Render(msg)
	}

	return []string{
		truncate(title, m.width),
		truncate(m.search.View(), m.width),
		truncate(errLine, m.width),
		"",
	}
}

// renderBoard returns exactly boardHeight lines.
func (m Model) renderBoard(groups []types.Group) []string {
	var all []string
	if len(groups) == 0 {
		all = []string{m.styles.faint.Render("No tiles yet. Type a question and press Enter.")}
	} else {
		cols := columns(m.width)
		for start := 0; start < len(groups); start += cols {
			end := min(start+cols, len(groups))
			cards := make([]string, 0, 2*(end-start))
			for i := start; i < end; i++ {
				if i > start {
					cards = append(cards, strings.Repeat(" ", cardGap))
				}
				cards = append(cards, m.renderCard(i, groups[i]))
			}
			row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
			all = append(all, strings.Split(row, "\n")...)
		}
	}

	height := m.boardHeight()
	start := min(m.scroll, len(all))
	out := make([]string, height)
	copy(out, all[start:min(start+height, len(all))])
	return out
}

func (m Model) renderCard(index int, g types.Group) string {
	inner := cardWidth - 2
	dragging := m.drag.State() == drag.Dragging
	focused := m.focus != FocusSearch && index == m.cursorGroup
	target := dragging && ((m.mouseDrag && g.ID == m.hoverGroup) || (!m.mouseDrag && focused))

	var name string
	switch {
	case m.focus == FocusRename && g.ID == m.renameID:
		name = m.rename.View()
	case g.Name == "":
		name = m.styles.faint.Render("(unnamed)")
	default:
		name = m.styles.group.Render(g.Name)
	}
	title := name + m.styles.faint.Render(fmt.Sprintf(" (%d)", len(g.Tiles)))

	lines := []string{padRight(truncate(title, inner), inner)}
	active := m.drag.ActiveTileID()
	for j, t := range g.Tiles {
		q := padRight(truncate("? "+oneLine(t.Question), inner), inner)
		c := padRight(truncate("  "+oneLine(t.Content), inner), inner)
		switch {
		case t.ID == active:
			q, c = m.styles.dragging.Render(q), m.styles.dragging.Render(c)
		case focused && j == m.cursorTile:
			q, c = m.styles.selected.Render(q), m.styles.selected.Render(c)
		default:
			q, c = m.styles.question.Render(q), m.styles.content.Render(c)
		}
		lines = append(lines, q, c)
	}

	style := m.styles.card.Width(inner)
	switch {
	case target:
		style = style.BorderForeground(m.theme.DropTarget)
	case focused:
		style = style.BorderForeground(m.theme.FocusBorder)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter(groups []types.Group) []string {
	var info string
	switch {
	case m.drag.State() == drag.Dragging:
		t, _, _ := m.session.Store().FindTile(m.drag.ActiveTileID())
		info = m.styles.dragging.Render("Moving: "+oneLine(t.Question)) +
			m.styles.faint.Render(" · drop it on a group")
	case m.status != "":
		info = m.styles.faint.Render(m.status)
	case m.focus == FocusBoard:
		if _, t, ok := m.selected(groups); ok {
			info = m.styles.content.Render(oneLine(t.Content))
		}
	}
	return []string{
		truncate(info, m.width),
		truncate(m.styles.faint.Render(m.helpText()), m.width),
	}
}

func (m Model) helpText() string {
	switch {
	case m.focus == FocusRename:
		return helpLine(
			key.NewBinding(key.WithHelp("Enter", "done")),
			key.NewBinding(key.WithHelp("Esc", "revert")),
		)
	case m.focus == FocusBoard && m.drag.State() == drag.Dragging:
		return helpLine(m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Drop, m.keys.Cancel)
	case m.focus == FocusBoard:
		return helpLine(m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Grab,
			m.keys.Rename, m.keys.Remove, m.keys.FocusSearch, m.keys.Export, m.keys.QuitBoard)
	default:
		return helpLine(m.keys.Submit, m.keys.FocusToggle, m.keys.ToggleBackend, m.keys.Export, m.keys.Quit)
	}
}
