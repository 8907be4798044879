package linter

import (
	"fmt"
	"regexp"

	"github.com/linterman/linterman/internal/collection"
)

const statusRuleID = "test-http-status-mandatory"

// statusTestPattern recognizes the usual ways a script asserts the HTTP
// status: pm.response status matchers, pm.expect on the response code,
// and the legacy responseCode comparisons.
var statusTestPattern = regexp.MustCompile(
	`pm\.response\.to\.have\.status\(` +
		`|pm\.response\.to\.be\.success` +
		`|pm\.expect\(pm\.response\.code\)` +
		`|pm\.response\.code\s*===` +
		`|responseCode\.code\s*===`)

// statusTestRule requires every request to assert the HTTP status code in
// its own test script. Folder-level tests do not count here: a shared
// folder script cannot know which status each request expects.
type statusTestRule struct{}

func (statusTestRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          statusRuleID,
		Name:        "HTTP status test required",
		Category:    CategoryTesting,
		Severity:    SeverityError,
		Description: "Every request must assert the HTTP status code in its test script.",
		Fixable:     true,
	}
}

func (statusTestRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() || statusTestPattern.MatchString(it.TestScript()) {
			return
		}
		issues = append(issues, Issue{
			RuleID:   statusRuleID,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Request %q does not test the HTTP status code", nameOrUnknown(it)),
			Path:     it.Path(),
			Fix: &Fix{
				Type:     FixAddTest,
				TestCode: "pm.test(location + ' - Status code is 2xx', function() {\n    pm.response.to.be.success;\n});",
			},
		})
	})
	return issues, nil
}
