package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/linterman/linterman/internal/linter"
)

// printJSON writes v as indented JSON, the format consumed by CI jobs
// and the review UI.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printReport renders a human-readable lint report.
func printReport(w io.Writer, res *linter.Result) {
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(w, "\nScore: %s\n", scoreLabel(res.Score))
	fmt.Fprintf(w, "Requests: %d   Folders: %d   Tests: %d\n\n",
		res.Stats.TotalRequests, res.Stats.TotalFolders, res.Stats.TotalTests)

	if len(res.Issues) == 0 {
		fmt.Fprintf(w, "%s No issues found\n", green("✓"))
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	for _, issue := range res.Issues {
		fmt.Fprintf(w, "%s [%s] %s\n", severityMarker(issue.Severity), issue.RuleID, issue.Message)
		location := fmt.Sprintf("    at %s", cyan(issue.Path))
		if issue.Fix != nil {
			location += fmt.Sprintf("  (fix available: %s)", issue.Fix.Type)
		}
		fmt.Fprintln(w, location)
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%d error(s), %d warning(s), %d info(s)\n",
		res.Stats.Errors, res.Stats.Warnings, res.Stats.Infos)
}

// scoreLabel colors the score by band: green from 90, yellow from 70,
// red below.
func scoreLabel(score int) string {
	text := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 90:
		return color.New(color.FgGreen).Sprint(text)
	case score >= 70:
		return color.New(color.FgYellow).Sprint(text)
	default:
		return color.New(color.FgRed).Sprint(text)
	}
}

func severityMarker(severity linter.Severity) string {
	switch severity {
	case linter.SeverityError:
		return color.New(color.FgRed).Sprint("✗")
	case linter.SeverityWarning:
		return color.New(color.FgYellow).Sprint("!")
	default:
		return color.New(color.FgCyan).Sprint("ⓘ")
	}
}
