// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/tileboard/pkg/types"
)

// Theme is the board's color palette. Colors are ANSI 256 codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	ErrorText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	FocusBorder      lipgloss.Color
	DropTarget       lipgloss.Color
	DragForeground   lipgloss.Color

	DocumentBackend   lipgloss.Color
	DatasourceBackend lipgloss.Color
}

// DefaultTheme suits a dark terminal.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),
	ErrorText:  lipgloss.Color("203"),

	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("39"),
	BorderColor:      lipgloss.Color("240"),
	FocusBorder:      lipgloss.Color("75"),
	DropTarget:       lipgloss.Color("214"),
	DragForeground:   lipgloss.Color("214"),

	DocumentBackend:   lipgloss.Color("78"),
	DatasourceBackend: lipgloss.Color("141"),
}

type styles struct {
	title    lipgloss.Style
	faint    lipgloss.Style
	err      lipgloss.Style
	question lipgloss.Style
	content  lipgloss.Style
	selected lipgloss.Style
	dragging lipgloss.Style
	group    lipgloss.Style
	card     lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		err:      lipgloss.NewStyle().Bold(true).Foreground(theme.ErrorText),
		question: lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText),
		content:  lipgloss.NewStyle().Foreground(theme.FaintText),
		selected: lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground),
		dragging: lipgloss.NewStyle().Bold(true).Foreground(theme.DragForeground),
		group:    lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor),
	}
}

func (theme Theme) backendColor(kind types.BackendKind) lipgloss.Color {
	if kind == types.BackendDatasource {
		return theme.DatasourceBackend
	}
	return theme.DocumentBackend
}
