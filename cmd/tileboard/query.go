// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [question...]",
	Short: "Dispatch one question and print the resulting tile",
	Long: `Query sends a single question to the selected backend and prints the
tile it produces. On failure the same message the board would show is
printed and the command exits non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	a.session.SetSearch(strings.Join(args, " "))
	g, submitted, err := a.session.Submit(cmd.Context())
	if !submitted {
		return errors.New("question is empty")
	}
	if err != nil {
		return err
	}

	tile := g.Tiles[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tile)
	}

	fmt.Fprintf(os.Stdout, "Question: %s\n", tile.Question)
	fmt.Fprintf(os.Stdout, "Backend:  %s\n\n", a.session.BackendKind().Label())
	fmt.Fprintln(os.Stdout, tile.Content)
	return nil
}

func init() {
	queryCmd.Flags().String("backend", "", "backend: document or datasource (default from board.default_backend)")
	queryCmd.Flags().Bool("json", false, "output the tile as JSON")

	rootCmd.AddCommand(queryCmd)
}
