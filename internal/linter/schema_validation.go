package linter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/linterman/linterman/internal/collection"
)

const schemaValidationRuleID = "test-schema-validation-recommended"

var schemaTestPattern = regexp.MustCompile(`pm\.response\.to\.have\.jsonSchema\s*\(|jsonSchema|Schema_Validation`)

const schemaTestTemplate = `// Define the expected JSON schema
const schema = {
    "type": "object",
    "properties": {
        // Describe the expected properties here
    },
    "required": []
};

// Schema validation test
if (pm.response.code === 200) {
    pm.test(requestName + " - Schema_Validation", () => {
        pm.response.to.have.jsonSchema(schema);
    });
}`

// schemaValidationRule recommends JSON schema validation for requests
// that likely return JSON: GET and POST endpoints that are not file or
// download routes. Folder-level schema tests count.
type schemaValidationRule struct{}

func (schemaValidationRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          schemaValidationRuleID,
		Name:        "JSON schema validation recommended",
		Category:    CategoryTesting,
		Severity:    SeverityWarning,
		Description: "Requests returning JSON should validate the response against a schema.",
		Fixable:     true,
	}
}

func (schemaValidationRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}

		method := it.Method()
		url := it.RawURL()
		likelyJSON := (method == "GET" || method == "POST") &&
			!strings.Contains(url, "/download") &&
			!strings.Contains(url, "/file")
		if !likelyJSON {
			return
		}

		if schemaTestPattern.MatchString(it.TestScript()) ||
			anyMatch(schemaTestPattern, it.InheritedTestScripts()) {
			return
		}

		issues = append(issues, Issue{
			RuleID:   schemaValidationRuleID,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Request %q should validate the JSON response schema to strengthen its tests", nameOrPosition(it)),
			Path:     it.Path(),
			Fix: &Fix{
				Type:          FixAddSchemaValidation,
				SuggestedCode: schemaTestTemplate,
			},
		})
	})
	return issues, nil
}
