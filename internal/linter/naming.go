package linter

import (
	"fmt"
	"regexp"

	"github.com/linterman/linterman/internal/collection"
)

const namingRuleID = "request-naming-convention"

var methodPrefixPattern = regexp.MustCompile(`^(GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)\s+`)

// namingConventionRule wants request names to start with their HTTP
// method, e.g. "GET List users". Folders are not checked.
type namingConventionRule struct{}

func (namingConventionRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          namingRuleID,
		Name:        "Request naming convention",
		Category:    CategoryStructure,
		Severity:    SeverityWarning,
		Description: "Request names must start with their HTTP method.",
		Fixable:     true,
	}
}

func (namingConventionRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}
		method := it.Method()
		if method == "" {
			return
		}
		name := nameOrPosition(it)
		if methodPrefixPattern.MatchString(name) {
			return
		}
		issues = append(issues, Issue{
			RuleID:   namingRuleID,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Request %q should start with the HTTP method (e.g. %q)", name, method+" "+name),
			Path:     it.Path(),
			Fix: &Fix{
				Type:          FixRenameRequest,
				SuggestedName: method + " " + name,
			},
		})
	})
	return issues, nil
}
