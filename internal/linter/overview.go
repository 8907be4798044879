package linter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/mod/semver"

	"github.com/linterman/linterman/internal/collection"
)

const overviewRuleID = "collection-overview-template"

const minDescriptionLength = 100

// overviewSections are the required documentation sections with their
// accepted spellings. The canonical names follow the fixed template the
// collections are authored against.
var overviewSections = []struct {
	name     string
	variants []string
}{
	{"Prérequis", []string{"prérequis", "prerequis", "requirements", "pré-requis"}},
	{"Présentation", []string{"présentation", "presentation", "description", "overview"}},
	{"Mode d'emploi", []string{"mode d'emploi", "mode d emploi", "utilisation", "usage", "how to use", "instructions"}},
	{"Reste à faire", []string{"reste à faire", "todo", "à faire", "remaining", "next steps"}},
}

var (
	referentWordPattern  = regexp.MustCompile(`(?i)référent`)
	referentTablePattern = regexp.MustCompile(`(?i)\|.*référent.*\|`)
	referentLabelPattern = regexp.MustCompile(`(?i)référent\s*:`)
	versionWordPattern   = regexp.MustCompile(`(?i)version.*collection`)
	versionTablePattern  = regexp.MustCompile(`(?i)\|.*version.*collection.*\|`)
	versionLabelPattern  = regexp.MustCompile(`(?i)version.*collection\s*:`)

	versionValuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)version.*collection\s*:?\s*(v?\d+\.\d+\.\d+)`),
		regexp.MustCompile(`(?i)version\s+de\s+collection\s*:?\s*(v?\d+\.\d+\.\d+)`),
		regexp.MustCompile(`(?i)collection\s+version\s*:?\s*(v?\d+\.\d+\.\d+)`),
	}
	referentValuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)référent\s*:?\s*([^\n\r|*]+)`),
		regexp.MustCompile(`(?i)referent\s*:?\s*([^\n\r|*]+)`),
		regexp.MustCompile(`(?i)contact\s*:?\s*([^\n\r|*]+)`),
		regexp.MustCompile(`(?i)responsable\s*:?\s*([^\n\r|*]+)`),
	}
	emptyValuePattern = regexp.MustCompile(`^[-*\s]*$`)
)

// overviewRule checks the collection-level documentation against the
// fixed overview template: four named sections, a referent, a collection
// version that parses as a semantic version, and a minimum length.
type overviewRule struct{}

func (overviewRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          overviewRuleID,
		Name:        "Collection overview template",
		Category:    CategoryDocumentation,
		Severity:    SeverityError,
		Description: "Collection documentation must follow the overview template.",
		Fixable:     false,
	}
}

func (overviewRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	desc := c.Description()
	descLower := strings.ToLower(desc)

	overviewIssue := func(message string) Issue {
		return Issue{
			RuleID:   overviewRuleID,
			Severity: SeverityError,
			Message:  message,
			Path:     "/info/description",
		}
	}

	var issues []Issue
	for _, section := range overviewSections {
		found := false
		for _, variant := range section.variants {
			if strings.Contains(descLower, variant) {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, overviewIssue(fmt.Sprintf("Missing documentation section: %q", section.name)))
		}
	}

	meta := extractOverviewMetadata(desc)

	hasReferentColumn := referentWordPattern.MatchString(desc) &&
		(referentTablePattern.MatchString(desc) || referentLabelPattern.MatchString(desc))
	switch {
	case !hasReferentColumn:
		issues = append(issues, overviewIssue(`Documentation table is missing the "Référent" column`))
	case meta.referent == "":
		issues = append(issues, overviewIssue(`Referent missing: the "Référent" column is present but empty`))
	}

	hasVersionColumn := versionWordPattern.MatchString(desc) &&
		(versionTablePattern.MatchString(desc) || versionLabelPattern.MatchString(desc))
	switch {
	case !hasVersionColumn:
		issues = append(issues, overviewIssue(`Documentation table is missing the "Version de collection" column`))
	case meta.version == "":
		issues = append(issues, overviewIssue(`Collection version missing: the "Version de collection" column is present but empty`))
	default:
		candidate := meta.version
		if !strings.HasPrefix(candidate, "v") {
			candidate = "v" + candidate
		}
		if !semver.IsValid(candidate) {
			issues = append(issues, overviewIssue(fmt.Sprintf("Collection version %q is not a valid semantic version", meta.version)))
		}
	}

	if len(desc) < minDescriptionLength {
		issues = append(issues, overviewIssue(fmt.Sprintf("Collection description too short (minimum %d characters required)", minDescriptionLength)))
	}
	return issues, nil
}

type overviewMetadata struct {
	version  string
	referent string
}

// extractOverviewMetadata pulls the referent and collection version from
// the documentation, preferring a Markdown table and falling back to
// labeled lines.
func extractOverviewMetadata(description string) overviewMetadata {
	var meta overviewMetadata
	extractFromTable(description, &meta)

	if meta.version == "" {
		for _, re := range versionValuePatterns {
			if m := re.FindStringSubmatch(description); m != nil {
				v := strings.TrimSpace(m[1])
				if !strings.HasPrefix(v, "v") {
					v = "v" + v
				}
				meta.version = v
				break
			}
		}
	}
	if meta.referent == "" {
		for _, re := range referentValuePatterns {
			m := re.FindStringSubmatch(description)
			if m == nil {
				continue
			}
			r := strings.TrimSpace(strings.NewReplacer("|", "", "*", "").Replace(m[1]))
			if r != "" && !emptyValuePattern.MatchString(r) {
				meta.referent = r
				break
			}
		}
	}
	return meta
}

// extractFromTable reads the first Markdown table of the description.
// Two-column tables are treated as key/value rows; wider tables map
// values to their headers positionally. A blank line ends the table.
func extractFromTable(description string, meta *overviewMetadata) {
	var headers []string
	inTable := false

	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)

		if !inTable {
			if strings.Contains(trimmed, "|") {
				for _, h := range strings.Split(trimmed, "|") {
					h = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), "*", ""))
					if h != "" {
						headers = append(headers, h)
					}
				}
				inTable = true
			}
			continue
		}

		if trimmed == "" {
			break
		}
		if strings.HasPrefix(trimmed, "|") && strings.Contains(trimmed, "---") {
			continue
		}
		if !strings.Contains(trimmed, "|") {
			continue
		}

		var values []string
		for _, v := range strings.Split(trimmed, "|") {
			v = strings.ReplaceAll(strings.TrimSpace(v), "*", "")
			if v != "" {
				values = append(values, v)
			}
		}

		if len(headers) == 2 && len(values) == 2 {
			setOverviewValue(meta, strings.ToLower(values[0]), values[1])
			continue
		}
		for j, value := range values {
			if j >= len(headers) {
				break
			}
			setOverviewValue(meta, headers[j], value)
		}
	}
}

func setOverviewValue(meta *overviewMetadata, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" || value == "---" {
		return
	}
	if strings.Contains(key, "version") && strings.Contains(key, "collection") {
		if !strings.HasPrefix(value, "v") && startsWithDigit(value) {
			value = "v" + value
		}
		meta.version = value
	}
	if strings.Contains(key, "référent") || strings.Contains(key, "referent") {
		meta.referent = value
	}
}

func startsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}
