package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linterman/linterman/internal/collection"
	"github.com/linterman/linterman/internal/linter"
)

var lintCmd = &cobra.Command{
	Use:   "lint [collection.json]",
	Short: "Analyze a collection and report quality issues",
	Long: `Lint reads a Postman collection from a file or stdin, runs the rule
set, and prints a report with the quality score, every issue found, and
aggregate statistics.

Examples:
  # Lint a collection export (JSON result on stdout)
  linterman lint collection.json

  # Lint from stdin
  cat collection.json | linterman lint

  # Human-readable report
  linterman lint --format pretty collection.json

  # Run a subset of rules
  linterman lint --rules hardcoded-secrets,test-http-status-mandatory collection.json

  # Gate a CI pipeline on the score
  linterman lint --fail-below 80 collection.json

  # Record the score for later comparison
  linterman lint --save collection.json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rulesFlag, _ := cmd.Flags().GetString("rules")
		configPath, _ := cmd.Flags().GetString("config")
		format, _ := cmd.Flags().GetString("format")
		failBelow, _ := cmd.Flags().GetInt("fail-below")
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

		res, err := linter.NewEngine(nil).Lint(col, cfg)
		if err != nil {
			fail(err)
		}

		if save {
			if err := recordRun(collectionLabel(col, args), res, 0); err != nil {
				fail(err)
			}
		}

		switch format {
		case "json":
			if err := printJSON(os.Stdout, res); err != nil {
				fail(err)
			}
		case "pretty":
			printReport(os.Stdout, res)
		default:
			fail(fmt.Errorf("unknown format %q (expected json or pretty)", format))
		}

		if failBelow > 0 && res.Score < failBelow {
			fmt.Fprintf(os.Stderr, "Error: score %d is below the required minimum %d\n", res.Score, failBelow)
			os.Exit(1)
		}
	},
}

func init() {
	lintCmd.Flags().StringP("rules", "r", "", "Comma-separated rule ids to run (default: all rules)")
	lintCmd.Flags().StringP("config", "c", "", "Path to a lint configuration file (YAML or JSON)")
	lintCmd.Flags().StringP("format", "f", "json", "Output format: json or pretty")
	lintCmd.Flags().Int("fail-below", 0, "Exit with an error when the score is below this value")
	lintCmd.Flags().Bool("save", false, "Record the result in the score history database")

	rootCmd.AddCommand(lintCmd)
}

// readCollection loads the document from the file argument, or from
// stdin when no argument is given.
func readCollection(args []string) ([]byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading collection: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading collection from stdin: %w", err)
	}
	return data, nil
}

// buildConfig merges the config file with the command line flags. An
// explicit --rules selection overrides the file.
func buildConfig(configPath, rulesFlag string) (linter.Config, error) {
	cfg := linter.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = linter.LoadConfig(configPath)
		if err != nil {
			return linter.Config{}, err
		}
	}
	if rulesFlag != "" {
		cfg.Rules = splitRules(rulesFlag)
	}
	return cfg, nil
}

func splitRules(flag string) []string {
	var rules []string
	for _, id := range strings.Split(flag, ",") {
		if id = strings.TrimSpace(id); id != "" {
			rules = append(rules, id)
		}
	}
	return rules
}

// collectionLabel names the run in the history database: the collection
// name when present, the file name otherwise.
func collectionLabel(col *collection.Collection, args []string) string {
	if name := col.Name(); name != "" {
		return name
	}
	if len(args) == 1 {
		return filepath.Base(args[0])
	}
	return "stdin"
}
