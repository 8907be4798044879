package linter

import (
	"fmt"

	"github.com/linterman/linterman/internal/collection"
)

const examplesRuleID = "request-examples-required"

// examplesRule requires every request to ship at least one saved
// response example. Examples double as documentation and as the source
// for mock servers, so their absence is treated as an error.
type examplesRule struct{}

func (examplesRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          examplesRuleID,
		Name:        "Response examples required",
		Category:    CategoryDocumentation,
		Severity:    SeverityError,
		Description: "Every request must have at least one saved response example.",
		Fixable:     false,
	}
}

func (examplesRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() || len(it.Responses()) > 0 {
			return
		}
		issues = append(issues, Issue{
			RuleID:   examplesRuleID,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Request %q has no response examples", nameOrPosition(it)),
			Path:     it.Path(),
		})
	})
	return issues, nil
}
