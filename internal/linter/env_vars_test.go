package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentVarsRule_FlagsLiteralURL(t *testing.T) {
	col := buildDoc(t, goodOverview,
		reqItem("GET Pets", "GET", "https://api.example.com/v1/pets"))

	issues := runRule(t, environmentVarsRule{}, col)
	require.Len(t, issues, 1)
	issue := issues[0]
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, `Request "GET Pets" should use an environment variable for the URL (e.g. {{base_url}})`, issue.Message)
	assert.Equal(t, "/item[0]/request/url", issue.Path)
	require.NotNil(t, issue.Fix)
	assert.Equal(t, FixUseEnvironmentVar, issue.Fix.Type)
	assert.Equal(t, "url", issue.Fix.Field)
	assert.Equal(t, "{{base_url}}", issue.Fix.SuggestedVariable)
}

func TestEnvironmentVarsRule_ToleratedURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"templated base", "{{base_url}}/pets"},
		{"templated mid url", "https://{{tenant}}.example.com/pets"},
		{"localhost", "http://localhost:3000/pets"},
		{"loopback", "http://127.0.0.1:8080/pets"},
		{"relative", "/pets"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := buildDoc(t, goodOverview, reqItem("GET Pets", "GET", tt.url))
			assert.Empty(t, runRule(t, environmentVarsRule{}, col))
		})
	}
}
