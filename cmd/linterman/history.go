package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linterman/linterman/internal/history"
	"github.com/linterman/linterman/internal/linter"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lint scores",
	Long: `History lists past lint runs saved with --save, most recent first.
Scores are stored per collection, so trends survive renames of the
export file.

Examples:
  # Last 20 runs across all collections
  linterman history

  # Track one collection over time
  linterman history --collection "Pet Store API"

  # Machine-readable output
  linterman history --json`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		collectionName, _ := cmd.Flags().GetString("collection")
		asJSON, _ := cmd.Flags().GetBool("json")

		store, err := history.Open(dbPath)
		if err != nil {
			fail(err)
		}
		defer store.Close()

		entries, err := store.Recent(context.Background(), collectionName, limit)
		if err != nil {
			fail(err)
		}

		if asJSON {
			if err := printJSON(os.Stdout, entries); err != nil {
				fail(err)
			}
			return
		}

		if len(entries) == 0 {
			fmt.Println("No lint runs recorded yet. Run lint --save to start tracking scores.")
			return
		}

		for _, e := range entries {
			fmt.Printf("%s  %s  %s\n", e.CreatedAt, scoreLabel(e.Score), e.Collection)
			fmt.Printf("    %d error(s), %d warning(s), %d request(s), %d fix(es) applied\n",
				e.Errors, e.Warnings, e.TotalRequests, e.FixesApplied)
		}
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	historyCmd.Flags().String("collection", "", "Only show runs for this collection name")
	historyCmd.Flags().Bool("json", false, "Emit the history as JSON")

	rootCmd.AddCommand(historyCmd)
}

// recordRun appends a lint result to the history database named by the
// persistent --db flag.
func recordRun(collectionName string, res *linter.Result, fixesApplied int) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(context.Background(), collectionName, res, fixesApplied)
}
