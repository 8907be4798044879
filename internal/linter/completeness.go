package linter

import (
	"fmt"
	"strings"

	"github.com/linterman/linterman/internal/collection"
)

const completenessRuleID = "documentation-completeness"

// completenessRule checks the documentation carried by each node: every
// folder and request needs a description, saved response examples need a
// name and content, and query parameters need descriptions.
type completenessRule struct{}

func (completenessRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          completenessRuleID,
		Name:        "Documentation completeness",
		Category:    CategoryDocumentation,
		Severity:    SeverityError,
		Description: "Folders, requests, response examples and query parameters must be documented.",
		Fixable:     false,
	}
}

func (completenessRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	completenessIssue := func(message, path string) Issue {
		return Issue{
			RuleID:   completenessRuleID,
			Severity: SeverityError,
			Message:  message,
			Path:     path,
		}
	}

	c.Walk(func(it *collection.Item) {
		name := nameOrPosition(it)

		if strings.TrimSpace(it.Description()) == "" {
			switch {
			case it.IsFolder():
				issues = append(issues, completenessIssue(
					fmt.Sprintf("Folder %q has no description", name), it.Path()))
			case it.IsRequest():
				issues = append(issues, completenessIssue(
					fmt.Sprintf("Request %q has no description", name), it.Path()))
			}
		}
		if !it.IsRequest() {
			return
		}

		for i, resp := range it.Responses() {
			example, ok := resp.(map[string]any)
			if !ok {
				continue
			}
			path := fmt.Sprintf("%s/response[%d]", it.Path(), i)

			exampleName, _ := example["name"].(string)
			if exampleName == "" {
				issues = append(issues, completenessIssue(
					fmt.Sprintf("Example #%d for %q is missing name", i+1, name), path))
			}

			code, _ := example["code"].(float64)
			status, _ := example["status"].(string)
			noContent := code == 204 ||
				status == "No Content" ||
				strings.Contains(strings.ToLower(exampleName), "no content")

			body, _ := example["body"].(string)
			if body == "" && !noContent {
				issues = append(issues, completenessIssue(
					fmt.Sprintf("Example #%d for %q is missing content", i+1, name), path))
			}
		}

		var undocumented []string
		for _, param := range it.QueryParams() {
			key, _ := param["key"].(string)
			if key == "" {
				key = "unnamed parameter"
			}
			desc, _ := param["description"].(string)
			if strings.TrimSpace(desc) == "" {
				undocumented = append(undocumented, key)
			}
		}
		if len(undocumented) > 0 {
			issues = append(issues, completenessIssue(
				fmt.Sprintf("Request %q has undocumented parameters: %s", name, strings.Join(undocumented, ", ")),
				it.Path()+"/request/url/query"))
		}
	})
	return issues, nil
}
