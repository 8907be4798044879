package linter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/linterman/linterman/internal/collection"
)

const envVarsRuleID = "environment-variables-usage"

var literalURLPattern = regexp.MustCompile(`^https?://[^{]`)

// environmentVarsRule flags hardcoded absolute URLs that should go
// through an environment variable instead, so collections can switch
// between environments without editing requests. Local addresses are
// tolerated.
type environmentVarsRule struct{}

func (environmentVarsRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          envVarsRuleID,
		Name:        "Environment variables for URLs",
		Category:    CategoryBestPractices,
		Severity:    SeverityWarning,
		Description: "Request URLs should use environment variables instead of literal hosts.",
		Fixable:     true,
	}
}

func (environmentVarsRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}
		raw := it.RawURL()
		if !literalURLPattern.MatchString(raw) ||
			strings.Contains(raw, "{{") ||
			strings.Contains(raw, "localhost") ||
			strings.Contains(raw, "127.0.0.1") {
			return
		}
		issues = append(issues, Issue{
			RuleID:   envVarsRuleID,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Request %q should use an environment variable for the URL (e.g. {{base_url}})", nameOrPosition(it)),
			Path:     it.Path() + "/request/url",
			Fix: &Fix{
				Type:              FixUseEnvironmentVar,
				Field:             "url",
				SuggestedVariable: "{{base_url}}",
			},
		})
	})
	return issues, nil
}
