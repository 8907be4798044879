package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "linterman",
	Short: "Lint and auto-fix Postman collections",
	Long: `linterman analyzes Postman collection exports against a built-in rule
set covering tests, documentation, structure, performance and security.

Each run produces a 0-100 quality score, a list of issues with suggested
fixes, and aggregate statistics. The fix command applies every safe
suggestion to a copy of the collection; the original file is never
touched.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultHistoryPath(), "Path to the score history database")
}

// defaultHistoryPath keeps per-user history under the home directory,
// falling back to the working directory when home cannot be resolved.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "linterman.db"
	}
	return filepath.Join(home, ".linterman", "history.db")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
