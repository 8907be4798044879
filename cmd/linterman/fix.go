package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linterman/linterman/internal/collection"
	"github.com/linterman/linterman/internal/linter"
)

var fixCmd = &cobra.Command{
	Use:   "fix [collection.json]",
	Short: "Apply every safe fix and write the corrected collection",
	Long: `Fix lints the collection, applies every suggestion that can be applied
mechanically (renames, missing tests, secret masking, threshold tuning),
and reports the result. The input file is never modified.

By default the full fix result is printed as JSON: the corrected
collection plus before and after lint snapshots. With --output, only the
corrected collection is written to the given file and a short summary is
printed instead.

Examples:
  # Inspect the fix result
  linterman fix collection.json | jq .fixes_applied

  # Write the corrected collection next to the original
  linterman fix collection.json --output fixed.json

  # Only fix security findings
  linterman fix --rules hardcoded-secrets collection.json --output fixed.json

  # Record the post-fix score
  linterman fix --save collection.json --output fixed.json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		rulesFlag, _ := cmd.Flags().GetString("rules")
		configPath, _ := cmd.Flags().GetString("config")
		save, _ := cmd.Flags().GetBool("save")

		data, err := readCollection(args)
		if err != nil {
			fail(err)
		}
		col, err := collection.Parse(data)
		if err != nil {
			fail(err)
		}
		cfg, err := buildConfig(configPath, rulesFlag)
		if err != nil {
			fail(err)
		}

		res, err := linter.NewEngine(nil).Fix(col, cfg)
		if err != nil {
			fail(err)
		}

		if output != "" {
			if err := writeFixedCollection(output, res.Collection); err != nil {
				fail(err)
			}
			printFixSummary(os.Stdout, res, output)
		} else {
			if err := printJSON(os.Stdout, res); err != nil {
				fail(err)
			}
		}

		if save {
			if err := recordRun(collectionLabel(col, args), &res.After, res.FixesApplied); err != nil {
				fail(err)
			}
		}
	},
}

func init() {
	fixCmd.Flags().StringP("output", "o", "", "Write only the corrected collection to this file")
	fixCmd.Flags().StringP("rules", "r", "", "Comma-separated rule ids to fix (default: all rules)")
	fixCmd.Flags().StringP("config", "c", "", "Path to a lint configuration file (YAML or JSON)")
	fixCmd.Flags().Bool("save", false, "Record the post-fix result in the score history database")

	rootCmd.AddCommand(fixCmd)
}

func writeFixedCollection(path string, col *collection.Collection) error {
	data, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding fixed collection: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing fixed collection: %w", err)
	}
	return nil
}

func printFixSummary(w io.Writer, res *linter.FixResult, output string) {
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(w, "%s Applied %d fix(es)\n", green("✓"), res.FixesApplied)
	fmt.Fprintf(w, "Score: %s -> %s\n", scoreLabel(res.Before.Score), scoreLabel(res.After.Score))
	if remaining := len(res.After.Issues); remaining > 0 {
		fmt.Fprintf(w, "%d issue(s) need manual attention\n", remaining)
	}
	fmt.Fprintf(w, "Fixed collection written to %s\n", output)
}
