package linter

import (
	"fmt"
	"regexp"

	"github.com/linterman/linterman/internal/collection"
)

const responseTimeRuleID = "test-response-time-mandatory"

// responseTimePattern matches any response time assertion or mention,
// including scripts written in French.
var responseTimePattern = regexp.MustCompile(`responseTime|response_time|(?i:response time|temps de réponse)`)

// responseTimeTestRule asks every request for a response time assertion.
// Folder-level scripts count: a shared timing test covers every request
// underneath it.
type responseTimeTestRule struct{}

func (responseTimeTestRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          responseTimeRuleID,
		Name:        "Response time test expected",
		Category:    CategoryTesting,
		Severity:    SeverityWarning,
		Description: "Every request should assert its response time.",
		Fixable:     true,
	}
}

func (responseTimeTestRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}
		if responseTimePattern.MatchString(it.TestScript()) ||
			anyMatch(responseTimePattern, it.InheritedTestScripts()) {
			return
		}
		issues = append(issues, Issue{
			RuleID:   responseTimeRuleID,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Request %q is missing a response time test", nameOrPosition(it)),
			Path:     it.Path(),
			Fix: &Fix{
				Type:          FixAddResponseTimeTest,
				SuggestedCode: "pm.test(location + \" - Response time is less than 200ms\", function () {\n    pm.expect(pm.response.responseTime).to.be.below(200);\n});",
			},
		})
	})
	return issues, nil
}
