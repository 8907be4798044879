package linter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/linterman/linterman/internal/collection"
)

const secretsRuleID = "hardcoded-secrets"

const secretPreviewLimit = 50

// secretPattern pairs a credential-shaped pattern with the variable that
// should replace it. Patterns with a capture group isolate the secret
// value; the others match the secret outright.
type secretPattern struct {
	re         *regexp.Regexp
	kind       string
	suggestion string
}

var secretPatterns = []secretPattern{
	{regexp.MustCompile(`api[_-]?key\s*[=:]\s*["']?([a-zA-Z0-9_\-]{20,})["']?`), "API Key", "{{api_key}}"},
	{regexp.MustCompile(`apikey\s*[=:]\s*["']?([a-zA-Z0-9_\-]{20,})["']?`), "API Key", "{{api_key}}"},
	{regexp.MustCompile(`(?i)bearer\s+([a-zA-Z0-9_\-.]{20,})`), "Bearer Token", "{{auth_token}}"},
	{regexp.MustCompile(`token\s*[=:]\s*["']?([a-zA-Z0-9_\-.]{20,})["']?`), "Token", "{{auth_token}}"},
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), "AWS Access Key", "{{aws_access_key}}"},
	{regexp.MustCompile(`aws[_-]?secret[_-]?access[_-]?key\s*[=:]\s*["']?([a-zA-Z0-9/+]{40})["']?`), "AWS Secret Key", "{{aws_secret_key}}"},
	{regexp.MustCompile(`-----BEGIN\s+(?:RSA\s+)?PRIVATE\s+KEY-----`), "Private Key", "{{private_key}}"},
	// A placeholder value can never match here: "{" is outside the value
	// character class.
	{regexp.MustCompile(`password=([a-zA-Z0-9]{3,})`), "Password", "{{password}}"},
	{regexp.MustCompile(`pwd=([a-zA-Z0-9]{3,})`), "Password", "{{password}}"},
	{regexp.MustCompile(`secret\s*[=:]\s*["']([^"'\s]{8,})["']`), "Secret", "{{secret}}"},
	{regexp.MustCompile(`client[_-]?secret\s*[=:]\s*["']?([a-zA-Z0-9_\-]{20,})["']?`), "Client Secret", "{{client_secret}}"},
	{regexp.MustCompile(`jdbc:.*password=([^&\s]+)`), "Database Password", "{{db_password}}"},
	{regexp.MustCompile(`mongodb(?:\+srv)?://[^:]+:([^@]+)@`), "MongoDB Password", "{{mongo_password}}"},
	{regexp.MustCompile(`client_id\s*[=:]\s*["']?([a-zA-Z0-9_\-]{20,})["']?`), "OAuth Client ID", "{{client_id}}"},
	{regexp.MustCompile(`xox[baprs]-[0-9]{10,13}-[0-9]{10,13}-[a-zA-Z0-9]{24,}`), "Slack Token", "{{slack_token}}"},
	{regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`), "GitHub Token", "{{github_token}}"},
	{regexp.MustCompile(`sk_live_[a-zA-Z0-9]{24,}`), "Stripe Secret Key", "{{stripe_secret_key}}"},
	{regexp.MustCompile(`pk_live_[a-zA-Z0-9]{24,}`), "Stripe Publishable Key", "{{stripe_public_key}}"},
}

// secretsRule scans each request's serialized form for credential-shaped
// literals: API keys, tokens, passwords, cloud and payment provider
// keys. One pass over the JSON covers URLs, headers, bodies and auth
// blocks alike. At most one finding is reported per request.
type secretsRule struct{}

func (secretsRule) Metadata() RuleMetadata {
	return RuleMetadata{
		ID:          secretsRuleID,
		Name:        "Hardcoded secrets",
		Category:    CategorySecurity,
		Severity:    SeverityError,
		Description: "Credentials must come from variables, never literals in the collection.",
		Fixable:     true,
	}
}

func (secretsRule) Check(c *collection.Collection, _ Config) ([]Issue, error) {
	var issues []Issue
	c.Walk(func(it *collection.Item) {
		if !it.IsRequest() {
			return
		}
		serialized := it.RequestJSON()
		if serialized == "" {
			return
		}

		for _, p := range secretPatterns {
			m := p.re.FindStringSubmatch(serialized)
			if m == nil || strings.Contains(m[0], "{{") {
				continue
			}

			preview := m[0]
			if len(preview) > secretPreviewLimit {
				preview = preview[:secretPreviewLimit] + "..."
			}
			secret := m[0]
			if len(m) > 1 && m[1] != "" {
				secret = m[1]
			}

			issues = append(issues, Issue{
				RuleID:   secretsRuleID,
				Severity: SeverityError,
				Message: fmt.Sprintf("Hardcoded %s detected %q in %q, use an environment variable (%s)",
					p.kind, preview, nameOrUnknown(it), p.suggestion),
				Path: it.Path() + "/request",
				Fix: &Fix{
					Type:        FixMaskSecret,
					Match:       secret,
					Replacement: p.suggestion,
				},
			})
			break
		}
	})
	return issues, nil
}
