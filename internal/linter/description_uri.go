package linter

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/linterman/linterman/internal/collection"
)

const descriptionURIRuleID = "test-description-with-uri"

var (
	testNamePattern    = regexp.MustCompile(`pm\.test\s*\(\s*([^,]+?)(?:,|\))`)
	quotedDescPattern  = regexp.MustCompile(`["']([^"']+)["']`)
	placeholderPattern = regexp.MustCompile(`\{\{[^}]+\}\}`)
	slashPathPattern   = regexp.MustCompile(`/[^?#]*`)

	// Assignments that smell like a path variable: a pm variable or local
	// binding whose value expression mentions path, location, uri or url.
	pathVariablePatterns = []*regexp.Regexp{
		regexp.MustCompile(`pm\.environment\.set\s*\(\s*["']([^"']+)["']\s*,\s*[^)]*(?:path|location|uri|url)`),
		regexp.MustCompile(`pm\.variables\.set\s*\(\s*["']([^"']+)["']\s*,\s*[^)]*(?:path|location|uri|url)`),
		regexp.MustCompile(`let\s+(\w+)\s*=\s*[^;]*(?:path|location|uri|url)`),
		regexp.MustCompile(`const\s+(\w+)\s*=\s*[^;]*(?:path|location|uri|url)`),
	}
)

// descriptionURIRule wants every pm.test description to name the resource
// it exercises, either literally through a URL path segment or through a
// path variable such as location or requestName. Requests under folders
// that define their own pm.test calls are skipped entirely, since a
// shared folder test cannot embed each request's URI.
type descriptionURIRule struct{}

func (descriptionURIRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          descriptionURIRuleID,
		Name:        "Test descriptions reference the URI",
		Category:    CategoryTesting,
		Severity:    SeverityError,
		Description: "Test descriptions must mention the request's URI or use a path variable.",
		Fixable:     true,
	}
}

func (descriptionURIRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}
		if anyMatch(testCallPattern, it.InheritedTestScripts()) {
			return
		}
		issues = append(issues, checkTestDescriptions(it)...)
	})
	return issues, nil
}

func checkTestDescriptions(it *collection.Item) []Issue {
	testScript := it.TestScript()
	if testScript == "" {
		return nil
	}
	segments := uriPathSegments(it.RawURL())
	if len(segments) == 0 {
		return nil
	}
	pathVars := pathVariables(it.PreRequestScript(), testScript)

	var issues []Issue
	for _, caps := range testNamePattern.FindAllStringSubmatch(testScript, -1) {
		rawDesc := strings.TrimSpace(caps[1])

		usesVariable := strings.Contains(rawDesc, "location") || strings.Contains(rawDesc, "requestName")
		for _, v := range pathVars {
			if strings.Contains(rawDesc, v) {
				usesVariable = true
				break
			}
		}
		if usesVariable {
			continue
		}

		quoted := quotedDescPattern.FindStringSubmatch(rawDesc)
		if quoted == nil {
			continue
		}
		desc := quoted[1]
		descLower := strings.ToLower(desc)

		mentioned := false
		for _, segment := range segments {
			if strings.Contains(descLower, strings.ToLower(segment)) {
				mentioned = true
				break
			}
		}
		if mentioned {
			continue
		}

		n := len(segments)
		if n > 3 {
			n = 3
		}
		suggested := "/" + strings.Join(segments[len(segments)-n:], "/")
		suggestion := fmt.Sprintf("include a path segment (e.g. %q) or use the location/requestName variable", suggested)
		if len(pathVars) > 0 {
			suggestion = fmt.Sprintf("include a path segment (e.g. %q) or use the variable %s", suggested, strings.Join(pathVars, " or "))
		}

		issues = append(issues, Issue{
			RuleID:   descriptionURIRuleID,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Test %q in %q should %s", desc, nameOrPosition(it), suggestion),
			Path:     it.Path(),
			Fix: &Fix{
				Type:           FixUpdateDescription,
				OldDescription: desc,
				NewDescription: fmt.Sprintf("location + ' - %s'", desc),
			},
		})
	}
	return issues
}

// uriPathSegments extracts the significant path segments of a request
// URL. Placeholders are neutralized before parsing; ":param" and
// "{param}" segments carry no literal value and are dropped.
func uriPathSegments(raw string) []string {
	if raw == "" {
		return nil
	}
	clean := placeholderPattern.ReplaceAllString(raw, "http://example.com")

	var path string
	if u, err := url.Parse(clean); err == nil && u.Scheme != "" {
		path = u.Path
	} else if m := slashPathPattern.FindString(raw); m != "" {
		path = m
	} else {
		return nil
	}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s == "" || strings.HasPrefix(s, ":") || strings.Contains(s, "{") {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

func pathVariables(prerequest, test string) []string {
	var vars []string
	for _, re := range pathVariablePatterns {
		for _, script := range []string{prerequest, test} {
			for _, m := range re.FindAllStringSubmatch(script, -1) {
				vars = append(vars, m[1])
			}
		}
	}
	slices.Sort(vars)
	return slices.Compact(vars)
}
