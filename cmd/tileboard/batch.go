// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/tileboard/internal/board"
	"github.com/pdiddy/tileboard/internal/dispatch"
	"github.com/pdiddy/tileboard/internal/session"
)

var batchCmd = &cobra.Command{
	Use:   "batch <query-file>",
	Short: "Run a file of questions into a fresh board",
	Long: `Batch reads a YAML query file (backend plus a list of questions),
dispatches the questions concurrently, and adds each answer to a fresh
board as its own group in the order the answers arrive. The resulting
board is printed, or written with --export.

The board keeps at most board.max_groups groups; with more questions the
earliest answers are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	qf, err := dispatch.ReadQueryFile(args[0])
	if err != nil {
		return err
	}
	formatName, _ := cmd.Flags().GetString("format")
	format, err := board.ParseExportFormat(formatName)
	if err != nil {
		return err
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	perSecond, _ := cmd.Flags().GetFloat64("rate")
	exportPath, _ := cmd.Flags().GetString("export")

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	// --backend wins over the file, which wins over the config default.
	if !cmd.Flags().Changed("backend") && qf.Backend != "" {
		kind, err := qf.BackendKind()
		if err != nil {
			return err
		}
		a.session.SetBackend(kind)
	}
	backend := a.session.Backend()

	total := len(qf.Questions)
	if limit := a.session.Store().MaxGroups(); total > limit {
		fmt.Fprintf(os.Stderr, "warning: %d questions but the board keeps %d groups\n", total, limit)
	}

	querier := dispatch.Throttle(a.dispatcher, perSecond, concurrency)
	okMark := color.New(color.FgGreen).SprintFunc()
	failMark := color.New(color.FgRed).SprintFunc()

	var done, failed int
	err = dispatch.RunBatch(cmd.Context(), querier, backend, qf.Questions, concurrency, func(c dispatch.Completion) {
		done++
		req := session.Request{Question: c.Question, Backend: backend}
		if _, err := a.session.Apply(cmd.Context(), req, c.Content, c.Err); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s [%d/%d] %s: %s\n", failMark("✗"), done, total, c.Question, err)
			return
		}
		fmt.Fprintf(os.Stderr, "%s [%d/%d] %s\n", okMark("✓"), done, total, c.Question)
	})
	if err != nil {
		return fmt.Errorf("batch interrupted after %d of %d questions: %w", done, total, err)
	}

	groups := a.session.Store().Groups()
	if exportPath != "" {
		if err := board.WriteExport(exportPath, groups, format); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d groups to %s\n", len(groups), exportPath)
	} else if err := board.Export(groups, format, os.Stdout); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d question(s) failed", failed, total)
	}
	return nil
}

func init() {
	batchCmd.Flags().String("backend", "", "backend: document or datasource (default from the query file, then board.default_backend)")
	batchCmd.Flags().Int("concurrency", dispatch.DefaultConcurrency, "maximum dispatches in flight")
	batchCmd.Flags().Float64("rate", 0, "maximum dispatches started per second (0 for no limit)")
	batchCmd.Flags().String("export", "", "write the board to this file instead of stdout")
	batchCmd.Flags().String("format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(batchCmd)
}
