package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTestRule_RecognizedAssertions(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"have.status", "pm.test('ok', function() { pm.response.to.have.status(200); });"},
		{"be.success", "pm.test('ok', function() { pm.response.to.be.success; });"},
		{"expect response code", "pm.test('ok', function() { pm.expect(pm.response.code).to.eql(200); });"},
		{"strict equality", "pm.test('ok', function() { return pm.response.code === 200; });"},
		{"legacy responseCode", "tests['ok'] = responseCode.code === 200;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := buildDoc(t, goodOverview,
				reqItem("GET Pets", "GET", "{{base_url}}/pets", withTestScript(tt.script)))
			assert.Empty(t, runRule(t, statusTestRule{}, col))
		})
	}
}

func TestStatusTestRule_FlagsMissingAssertion(t *testing.T) {
	col := buildDoc(t, goodOverview,
		reqItem("GET Pets", "GET", "{{base_url}}/pets",
			withTestScript("pm.test('shape', function() { pm.expect(pm.response.json()).to.have.property('pets'); });")),
		reqItem("GET Count", "GET", "{{base_url}}/count"),
	)

	issues := runRule(t, statusTestRule{}, col)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, SeverityError, issue.Severity)
		require.NotNil(t, issue.Fix)
		assert.Equal(t, FixAddTest, issue.Fix.Type)
		assert.Contains(t, issue.Fix.TestCode, "pm.response.to.be.success")
	}
	assert.Equal(t, `Request "GET Pets" does not test the HTTP status code`, issues[0].Message)
	assert.Equal(t, []string{"/item[0]", "/item[1]"}, issuePaths(issues))
}

func TestStatusTestRule_FolderScriptDoesNotCount(t *testing.T) {
	// A folder-wide status assertion cannot know which status each request
	// expects, so the requirement stays per request.
	folder := folderItem("Pets", "Pet calls.",
		reqItem("GET List pets", "GET", "{{base_url}}/pets"))
	addItemEvent(folder, "test", "pm.test('folder', function() { pm.response.to.be.success; });")
	col := buildDoc(t, goodOverview, folder)

	issues := runRule(t, statusTestRule{}, col)
	require.Len(t, issues, 1)
	assert.Equal(t, "/item[0]/item[0]", issues[0].Path)
}

func TestStatusTestRule_UnnamedRequest(t *testing.T) {
	col := buildDoc(t, goodOverview, reqItem("", "GET", "{{base_url}}/pets"))

	issues := runRule(t, statusTestRule{}, col)
	require.Len(t, issues, 1)
	assert.Equal(t, `Request "unknown" does not test the HTTP status code`, issues[0].Message)
}
