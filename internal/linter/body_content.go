package linter

import (
	"fmt"
	"regexp"

	"github.com/linterman/linterman/internal/collection"
)

const bodyContentRuleID = "test-body-content-validation"

var (
	// bodyTestPattern matches assertions that look at the response body
	// rather than only its status code.
	bodyTestPattern = regexp.MustCompile(
		`pm\.response\.json\(\)` +
			`|pm\.response\.to\.have\.jsonSchema` +
			`|responseJson` +
			`|jsonData` +
			`|pm\.response\.text\(\)` +
			`|\.to\.have\.property\(` +
			`|\.to\.include\(` +
			`|\.to\.eql\(` +
			`|\.to\.equal\(` +
			`|\.to\.be\.`)

	// noBodyPattern marks requests that predictably return no body, from
	// their scripts, method or name.
	noBodyPattern = regexp.MustCompile(`204|(?i:no.*content|delete)`)
)

// bodyContentRule flags tested requests whose assertions never inspect
// the response content. Requests without any test coverage are left to
// the coverage rules; empty-body endpoints are exempt.
type bodyContentRule struct{}

func (bodyContentRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          bodyContentRuleID,
		Name:        "Body content validation expected",
		Category:    CategoryTesting,
		Severity:    SeverityWarning,
		Description: "Test scripts should validate response content, not only the status code.",
		Fixable:     false,
	}
}

func (bodyContentRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}
		own := it.TestScript()
		inherited := it.InheritedTestScripts()
		if own == "" && !anyNonEmpty(inherited) {
			return
		}
		if bodyTestPattern.MatchString(own) || anyMatch(bodyTestPattern, inherited) {
			return
		}

		name := nameOrPosition(it)
		if noBodyPattern.MatchString(own) ||
			noBodyPattern.MatchString(it.Method()) ||
			noBodyPattern.MatchString(name) ||
			anyMatch(noBodyPattern, inherited) {
			return
		}

		issues = append(issues, Issue{
			RuleID:   bodyContentRuleID,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Request %q should validate response content (body, properties, schema)", name),
			Path:     it.Path(),
		})
	})
	return issues, nil
}
