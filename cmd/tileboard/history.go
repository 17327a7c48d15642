// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pdiddy/tileboard/internal/dispatch"
	"github.com/pdiddy/tileboard/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent dispatches from the history journal",
	Long: `History lists the most recent dispatches recorded in the journal at
history.path, newest first. With --save the listed questions are written
as a query file that "tileboard batch" can replay.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return errors.New("history is disabled: set history.path in the config file or TILEBOARD_HISTORY_PATH")
	}

	journal, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer journal.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := journal.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := saveQuestions(savePath, entries); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d question(s) to %s\n", len(entries), savePath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(entries, jsonOutput)
}

// saveQuestions writes entries' questions, oldest first, as a query file
// for the backend of the newest entry.
func saveQuestions(path string, entries []history.Entry) error {
	if len(entries) == 0 {
		return errors.New("no history entries to save")
	}
	questions := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		questions = append(questions, entries[i].Question)
	}
	return dispatch.WriteQueryFile(path, entries[0].Backend, questions)
}

func formatHistoryOutput(entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No dispatches recorded.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
	)
	table.Header([]string{"ID", "Time", "Backend", "Outcome", "Question"})

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		question := ansi.Truncate(strings.Join(strings.Fields(e.Question), " "), 60, "...")
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			string(e.Backend),
			string(e.Outcome),
			question,
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%d dispatches\n", len(entries))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", history.DefaultLimit, "maximum number of entries to list")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")
	historyCmd.Flags().String("save", "", "write the listed questions to a batch query file")

	rootCmd.AddCommand(historyCmd)
}
