package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyContentRule_FlagsStatusOnlyTests(t *testing.T) {
	col := buildDoc(t, goodOverview,
		reqItem("GET Pets", "GET", "{{base_url}}/pets",
			withTestScript("pm.test('status', function() { pm.response.to.have.status(200); });")))

	issues := runRule(t, bodyContentRule{}, col)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, `Request "GET Pets" should validate response content (body, properties, schema)`, issues[0].Message)
	assert.Nil(t, issues[0].Fix)
}

func TestBodyContentRule_AcceptedAssertions(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"json body", "const jsonData = pm.response.json();"},
		{"property check", "pm.expect(body).to.have.property('pets');"},
		{"include check", "pm.expect(pm.response.text()).to.include('pets');"},
		{"deep equality", "pm.expect(names).to.eql(['rex']);"},
		{"schema", "pm.response.to.have.jsonSchema(schema);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := buildDoc(t, goodOverview,
				reqItem("GET Pets", "GET", "{{base_url}}/pets", withTestScript(tt.script)))
			assert.Empty(t, runRule(t, bodyContentRule{}, col))
		})
	}
}

func TestBodyContentRule_Exemptions(t *testing.T) {
	statusOnly := "pm.test('status', function() { pm.response.to.have.status(204); });"
	tests := []struct {
		name string
		item map[string]any
	}{
		{
			"untested requests are left to the coverage rule",
			reqItem("GET Pets", "GET", "{{base_url}}/pets"),
		},
		{
			"delete method",
			reqItem("DELETE Pet", "DELETE", "{{base_url}}/pets/1",
				withTestScript("pm.test('status', function() { pm.response.to.have.status(200); });")),
		},
		{
			"204 in the script",
			reqItem("GET Purge", "GET", "{{base_url}}/purge", withTestScript(statusOnly)),
		},
		{
			"no content in the name",
			reqItem("GET No content probe", "GET", "{{base_url}}/probe",
				withTestScript("pm.test('status', function() { pm.response.to.have.status(200); });")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := buildDoc(t, goodOverview, tt.item)
			assert.Empty(t, runRule(t, bodyContentRule{}, col))
		})
	}
}

func TestBodyContentRule_InheritedAssertionCovers(t *testing.T) {
	folder := folderItem("Pets", "Pet calls.",
		reqItem("GET List pets", "GET", "{{base_url}}/pets",
			withTestScript("pm.test('status', function() { pm.response.to.have.status(200); });")))
	addItemEvent(folder, "test", "pm.expect(pm.response.json()).to.have.property('data');")
	col := buildDoc(t, goodOverview, folder)

	assert.Empty(t, runRule(t, bodyContentRule{}, col))
}
