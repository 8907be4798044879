package linter

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/linterman/linterman/internal/collection"
)

const thresholdRuleID = "response-time-threshold"

// maxResponseTimeMs is the highest acceptable asserted response time.
const maxResponseTimeMs = 2000

var thresholdPattern = regexp.MustCompile(`responseTime.*\.to\.be\.below\((\d+)\)`)

// thresholdRule flags response time assertions whose limit is so loose
// that the test cannot catch a performance regression.
type thresholdRule struct{}

func (thresholdRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          thresholdRuleID,
		Name:        "Response time threshold",
		Category:    CategoryPerformance,
		Severity:    SeverityWarning,
		Description: "Asserted response time limits must stay within 2000ms.",
		Fixable:     true,
	}
}

func (thresholdRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}
		for _, m := range thresholdPattern.FindAllStringSubmatch(it.TestScript(), -1) {
			threshold, err := strconv.Atoi(m[1])
			if err != nil || threshold <= maxResponseTimeMs {
				continue
			}
			issues = append(issues, Issue{
				RuleID:   thresholdRuleID,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("Request %q has a response time threshold too high (%dms > %dms recommended)",
					nameOrPosition(it), threshold, maxResponseTimeMs),
				Path: it.Path(),
				Fix: &Fix{
					Type:               FixAdjustThreshold,
					CurrentThreshold:   threshold,
					SuggestedThreshold: maxResponseTimeMs,
				},
			})
		}
	})
	return issues, nil
}
