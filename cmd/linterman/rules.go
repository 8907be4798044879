package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linterman/linterman/internal/linter"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available lint rules",
	Long: `Rules prints every registered rule with its id, severity, category and
a short description. Rule ids are the values accepted by --rules on the
lint and fix commands.

Examples:
  # Human-readable listing
  linterman rules

  # Feed the rule set to another tool
  linterman rules --json`,
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		meta := linter.Default().Metadata()
		if asJSON {
			if err := printJSON(os.Stdout, meta); err != nil {
				fail(err)
			}
			return
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("%d rules registered\n", len(meta))
		fmt.Println(strings.Repeat("─", 60))
		for _, m := range meta {
			fixable := ""
			if m.Fixable {
				fixable = cyan(" [fixable]")
			}
			fmt.Printf("%s %s (%s)%s\n", severityMarker(m.Severity), m.ID, m.Category, fixable)
			fmt.Printf("    %s\n", m.Description)
		}
	},
}

func init() {
	rulesCmd.Flags().Bool("json", false, "Emit the rule list as JSON")

	rootCmd.AddCommand(rulesCmd)
}
