package linter

import (
	"fmt"
	"strings"

	"github.com/linterman/linterman/internal/collection"
)

const coverageRuleID = "test-coverage-minimum"

// minCoveragePercent is the required share of requests carrying tests.
const minCoveragePercent = 80.0

// coverageRule emits a single document-level issue when fewer than 80%
// of requests carry their own test script. Exactly 80% passes.
type coverageRule struct{}

func (coverageRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          coverageRuleID,
		Name:        "Minimum test coverage",
		Category:    CategoryBestPractices,
		Severity:    SeverityWarning,
		Description: "At least 80% of requests must have a test script.",
		Fixable:     false,
	}
}

func (coverageRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var total, withTests int
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}
		total++
		if strings.TrimSpace(it.TestScript()) != "" {
			withTests++
		}
	})
	if total == 0 {
		return nil, nil
	}

	coverage := float64(withTests) / float64(total) * 100
	if coverage >= minCoveragePercent {
		return nil, nil
	}
	return []Issue{{
		RuleID:   coverageRuleID,
		Severity: SeverityWarning,
		Message: fmt.Sprintf("Insufficient test coverage: %.1f%% (%d/%d requests tested). Recommended minimum: %.0f%%",
			coverage, withTests, total, minCoveragePercent),
		Path: "/",
	}}, nil
}
