// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pdiddy/tileboard/internal/board"
	"github.com/pdiddy/tileboard/internal/drag"
	"github.com/pdiddy/tileboard/internal/session"
	"github.com/pdiddy/tileboard/pkg/types"
)

// DefaultExportPath is where ctrl+e writes the board unless configured.
const DefaultExportPath = "tileboard-export.yaml"

// Focus is the region receiving key input.
type Focus int

const (
	FocusSearch Focus = iota
	FocusBoard
	FocusRename
)

// dispatchResultMsg carries a finished dispatch back into Update, where
// it is applied to the board.
type dispatchResultMsg struct {
	req     session.Request
	content string
	err     error
}

// Option configures a Model.
type Option func(*Model)

// WithKeyMap replaces DefaultKeyMap.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) { m.keys = keys }
}

// WithTheme replaces DefaultTheme.
func WithTheme(theme Theme) Option {
	return func(m *Model) { m.theme = theme }
}

// WithExport sets where and how the export key writes the board.
func WithExport(path string, format board.ExportFormat) Option {
	return func(m *Model) {
		m.exportPath = path
		m.exportFormat = format
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l.Named("tui") }
}

// Model is the bubbletea model for the board. The session and drag
// controller are shared by every copy of the model; all board mutations
// happen inside Update, so the board is only touched from the program's
// goroutine. Dispatches run in commands and come back as messages.
type Model struct {
	ctx     context.Context
	session *session.Session
	drag    *drag.Controller
	keys    KeyMap
	theme   Theme
	styles  styles
	logger  *zap.Logger

	search  textinput.Model
	rename  textinput.Model
	spinner spinner.Model

	focus        Focus
	renameID     string
	renameBefore string

	cursorGroup int
	cursorTile  int
	scroll      int

	// mouseDrag is set while the left button holds a tile.
	mouseDrag  bool
	hoverGroup string

	pending int
	status  string

	exportPath   string
	exportFormat board.ExportFormat

	width  int
	height int
	ready  bool
}

// NewModel returns a model over s. ctx bounds every dispatch the model
// starts.
func NewModel(ctx context.Context, s *session.Session, opts ...Option) Model {
	search := textinput.New()
	search.Prompt = "› "
	search.Placeholder = "Ask a question"
	search.SetValue(s.Search())
	search.Focus()

	rename := textinput.New()
	rename.Prompt = ""
	rename.CharLimit = 120
	rename.Width = cardWidth - 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:          ctx,
		session:      s,
		drag:         drag.NewController(s.Store()),
		keys:         DefaultKeyMap,
		theme:        DefaultTheme,
		logger:       zap.NewNop(),
		search:       search,
		rename:       rename,
		spinner:      sp,
		focus:        FocusSearch,
		exportPath:   DefaultExportPath,
		exportFormat: board.ExportYAML,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.styles = newStyles(m.theme)
	return m
}

// Init starts the cursor blinking in the search box.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles a message and returns the updated model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.search.Width = max(10, m.width-lipgloss.Width(m.search.Prompt)-1)
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.MouseMsg:
		m.handleMouse(message)
		return m, nil

	case dispatchResultMsg:
		m.applyResult(message)
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd
	}

	// Cursor blink and other input-internal messages.
	var cmd tea.Cmd
	switch m.focus {
	case FocusSearch:
		m.search, cmd = m.search.Update(message)
	case FocusRename:
		m.rename, cmd = m.rename.Update(message)
	}
	return m, cmd
}

func (m Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(message, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(message, m.keys.ToggleBackend):
		kind := m.session.ToggleBackend()
		m.status = "Backend: " + kind.Label()
		return m, nil
	case key.Matches(message, m.keys.Export):
		m.export()
		return m, nil
	}

	switch m.focus {
	case FocusRename:
		return m.handleRenameKeys(message)
	case FocusBoard:
		return m.handleBoardKeys(message)
	default:
		return m.handleSearchKeys(message)
	}
}

func (m Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Submit):
		return m.submit()
	case key.Matches(message, m.keys.FocusToggle), key.Matches(message, m.keys.Cancel):
		m.setFocus(FocusBoard)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(message)
	m.session.SetSearch(m.search.Value())
	return m, cmd
}

func (m Model) handleBoardKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	dragging := m.drag.State() == drag.Dragging

	switch {
	case key.Matches(message, m.keys.QuitBoard):
		return m, tea.Quit
	case key.Matches(message, m.keys.FocusToggle), key.Matches(message, m.keys.FocusSearch):
		m.setFocus(FocusSearch)
		return m, textinput.Blink
	case key.Matches(message, m.keys.Up):
		m.moveUp()
	case key.Matches(message, m.keys.Down):
		m.moveDown()
	case key.Matches(message, m.keys.Left):
		m.moveGroup(-1)
	case key.Matches(message, m.keys.Right):
		m.moveGroup(1)
	case key.Matches(message, m.keys.Grab):
		if dragging {
			m.dropOnCursor()
		} else {
			m.pickUp()
		}
	case key.Matches(message, m.keys.Drop):
		if dragging {
			m.dropOnCursor()
		}
	case key.Matches(message, m.keys.Cancel):
		if dragging {
			// Released outside every group.
			m.finishDrag(m.drag.ActiveTileID(), "", m.drag.Release(""))
		}
	case key.Matches(message, m.keys.Rename):
		if m.startRename() {
			return m, textinput.Blink
		}
	case key.Matches(message, m.keys.Remove):
		m.removeSelected()
	}

	m.ensureVisible()
	return m, nil
}

func (m Model) handleRenameKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, m.keys.Submit):
		m.setFocus(FocusBoard)
		return m, nil
	case key.Matches(message, m.keys.Cancel):
		m.session.Store().RenameGroup(m.renameID, m.renameBefore)
		m.setFocus(FocusBoard)
		return m, nil
	}

	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(message)
	// Names follow the input as it is typed; an empty name is allowed.
	m.session.Store().RenameGroup(m.renameID, m.rename.Value())
	return m, cmd
}

// submit starts a dispatch for the current search text. The text stays in
// the box until a result is applied.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, ok := m.session.Pending()
	if !ok {
		return m, nil
	}
	m.pending++
	cmds := []tea.Cmd{m.dispatchCmd(req)}
	if m.pending == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) dispatchCmd(req session.Request) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		content, err := s.Dispatch(ctx, req)
		return dispatchResultMsg{req: req, content: content, err: err}
	}
}

func (m *Model) applyResult(message dispatchResultMsg) {
	m.pending = max(0, m.pending-1)
	if _, err := m.session.Apply(m.ctx, message.req, message.content, message.err); err != nil {
		return
	}
	m.search.SetValue(m.session.Search())

	// The new group is prepended; keep the cursor on the group it was on.
	if m.focus != FocusSearch {
		m.cursorGroup++
	}
	if m.focus == FocusRename {
		if _, ok := m.session.Store().Group(m.renameID); !ok {
			m.setFocus(FocusBoard)
		}
	}
	m.clampCursor()
	m.clampScroll()
}

func (m *Model) setFocus(f Focus) {
	if m.focus == FocusRename && f != FocusRename {
		m.renameID = ""
		m.renameBefore = ""
	}
	m.focus = f
	m.search.Blur()
	m.rename.Blur()
	switch f {
	case FocusSearch:
		m.search.Focus()
	case FocusRename:
		m.rename.Focus()
	}
}

func (m *Model) startRename() bool {
	g, _, ok := m.selected(m.groups())
	if !ok {
		return false
	}
	m.setFocus(FocusRename)
	m.renameID = g.ID
	m.renameBefore = g.Name
	m.rename.SetValue(g.Name)
	m.rename.CursorEnd()
	return true
}

func (m *Model) removeSelected() {
	g, t, ok := m.selected(m.groups())
	if !ok {
		return
	}
	if m.drag.ActiveTileID() == t.ID {
		m.drag.Cancel()
	}
	m.session.Store().RemoveTile(g.ID, t.ID)
	m.clampCursor()
	m.clampScroll()
}

func (m *Model) export() {
	groups := m.groups()
	if err := board.WriteExport(m.exportPath, groups, m.exportFormat); err != nil {
		m.logger.Warn("export failed", zap.String("path", m.exportPath), zap.Error(err))
		m.status = "Export failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Exported %d groups to %s", len(groups), m.exportPath)
}

// --- dragging ---

func (m *Model) pickUp() {
	if _, t, ok := m.selected(m.groups()); ok {
		m.drag.PickUp(t.ID)
	}
}

func (m *Model) dropOnCursor() {
	over := ""
	if groups := m.groups(); m.cursorGroup < len(groups) {
		over = groups[m.cursorGroup].ID
	}
	m.finishDrag(m.drag.ActiveTileID(), over, m.drag.Release(over))
}

func (m *Model) finishDrag(tileID, over string, outcome drag.Outcome) {
	m.mouseDrag = false
	m.hoverGroup = ""
	if outcome == drag.Moved {
		if g, ok := m.session.Store().Group(over); ok {
			m.status = fmt.Sprintf("Moved to %q", g.Name)
		}
		m.selectTile(tileID)
	}
	m.logger.Debug("drop", zap.String("tile", tileID), zap.String("over", over),
		zap.Stringer("outcome", outcome))
	m.clampCursor()
	m.clampScroll()
}

// --- mouse ---

func (m *Model) handleMouse(message tea.MouseMsg) {
	over, tileID := "", ""
	if message.Y >= headerLines && message.Y < headerLines+m.boardHeight() {
		boxes := layoutCards(m.groups(), m.width)
		over, tileID = hitTest(boxes, message.X, message.Y-headerLines+m.scroll)
	}

	switch message.Action {
	case tea.MouseActionRelease:
		if m.mouseDrag {
			m.finishDrag(m.drag.ActiveTileID(), over, m.drag.Release(over))
		}
		return
	case tea.MouseActionMotion:
		if m.mouseDrag {
			m.hoverGroup = over
		}
		return
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-3)
	case tea.MouseButtonWheelDown:
		m.scrollBy(3)
	case tea.MouseButtonLeft:
		m.status = ""
		if m.drag.State() == drag.Dragging {
			// A keyboard drag ends on whatever is clicked next.
			m.finishDrag(m.drag.ActiveTileID(), over, m.drag.Release(over))
			return
		}
		if message.Y == 1 {
			m.setFocus(FocusSearch)
			return
		}
		if over == "" {
			return
		}
		m.setFocus(FocusBoard)
		if tileID == "" {
			m.selectGroup(over)
			return
		}
		m.selectTile(tileID)
		m.drag.PickUp(tileID)
		m.mouseDrag = true
		m.hoverGroup = over
	}
}

// --- cursor and scrolling ---

func (m Model) groups() []types.Group {
	return m.session.Store().Groups()
}

// selected returns the group and tile under the board cursor.
func (m Model) selected(groups []types.Group) (types.Group, types.Tile, bool) {
	if m.cursorGroup < 0 || m.cursorGroup >= len(groups) {
		return types.Group{}, types.Tile{}, false
	}
	g := groups[m.cursorGroup]
	if m.cursorTile < 0 || m.cursorTile >= len(g.Tiles) {
		return types.Group{}, types.Tile{}, false
	}
	return g, g.Tiles[m.cursorTile], true
}

func (m *Model) selectTile(tileID string) {
	for gi, g := range m.groups() {
		if ti := g.IndexOf(tileID); ti >= 0 {
			m.cursorGroup, m.cursorTile = gi, ti
			m.ensureVisible()
			return
		}
	}
}

func (m *Model) selectGroup(groupID string) {
	for gi, g := range m.groups() {
		if g.ID == groupID {
			m.cursorGroup, m.cursorTile = gi, 0
			m.ensureVisible()
			return
		}
	}
}

func (m *Model) moveUp() {
	groups := m.groups()
	if m.cursorTile > 0 {
		m.cursorTile--
	} else if m.cursorGroup > 0 {
		m.cursorGroup--
		m.cursorTile = len(groups[m.cursorGroup].Tiles) - 1
	}
}

func (m *Model) moveDown() {
	groups := m.groups()
	if m.cursorGroup >= len(groups) {
		return
	}
	if m.cursorTile < len(groups[m.cursorGroup].Tiles)-1 {
		m.cursorTile++
	} else if m.cursorGroup < len(groups)-1 {
		m.cursorGroup++
		m.cursorTile = 0
	}
}

func (m *Model) moveGroup(delta int) {
	m.cursorGroup += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	groups := m.groups()
	if len(groups) == 0 {
		m.cursorGroup, m.cursorTile = 0, 0
		return
	}
	m.cursorGroup = min(max(m.cursorGroup, 0), len(groups)-1)
	m.cursorTile = min(max(m.cursorTile, 0), len(groups[m.cursorGroup].Tiles)-1)
}

func (m Model) boardHeight() int {
	return max(1, m.height-headerLines-footerLines)
}

func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	limit := max(0, boardExtent(layoutCards(m.groups(), m.width))-m.boardHeight())
	m.scroll = min(max(m.scroll, 0), limit)
}

// ensureVisible scrolls just enough to show the selected tile.
func (m *Model) ensureVisible() {
	boxes := layoutCards(m.groups(), m.width)
	if m.cursorGroup >= len(boxes) {
		return
	}
	b := boxes[m.cursorGroup]
	top := b.y + 2 + m.cursorTile*tileLines
	bottom := top + tileLines
	if m.cursorTile == 0 {
		top = b.y
	}
	if m.cursorTile == len(b.tileIDs)-1 {
		bottom = b.y + b.h
	}
	if top < m.scroll {
		m.scroll = top
	} else if bottom > m.scroll+m.boardHeight() {
		m.scroll = bottom - m.boardHeight()
	}
	m.clampScroll()
}
