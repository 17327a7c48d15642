// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/tileboard/internal/board"
	"github.com/pdiddy/tileboard/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive tile board",
	Long: `Board opens a full-screen search box above a grid of tile groups.
Type a question and press Enter; each answer arrives as a new group.
Move tiles between groups with Space (or drag with the mouse), rename a
group with r, remove a tile with x, and export the board with ctrl+e.

Logs are discarded while the board is open unless log.file is set.`,
	RunE: runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	exportPath, _ := cmd.Flags().GetString("export")
	formatName, _ := cmd.Flags().GetString("format")
	format, err := board.ParseExportFormat(formatName)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(cmd.Context(), a.session,
		tui.WithExport(exportPath, format),
		tui.WithLogger(a.logger))
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}

func init() {
	boardCmd.Flags().String("backend", "", "initial backend: document or datasource (default from board.default_backend)")
	boardCmd.Flags().String("export", tui.DefaultExportPath, "file written by ctrl+e")
	boardCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(boardCmd)
}
