package linter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linterman/linterman/internal/collection"
)

// goodOverview satisfies the overview template rule so tests aimed at
// other rules do not drown in documentation findings.
const goodOverview = `## Présentation
Collection covering the pet store API from listing to adoption.

## Prérequis
An environment file defining base_url and api_key.

## Mode d'emploi
Run the folders top to bottom with the staging environment selected.

## Reste à faire
Nothing at the moment.

| Référent | Version de collection | Statut |
|----------|-----------------------|--------|
| Jane Doe | 1.2.3                 | Actif  |
`

// cleanTestScript passes every test-related rule: it asserts the status,
// the response time and the schema, and names each test through the
// location variable.
const cleanTestScript = `pm.test(location + ' - Status code is 2xx', function() {
    pm.response.to.be.success;
});
pm.test(location + ' - Response time below limit', function() {
    pm.expect(pm.response.responseTime).to.be.below(500);
});
pm.test(location + ' - Schema is valid', function() {
    pm.response.to.have.jsonSchema(schema);
});`

type itemOpt func(map[string]any)

// reqItem builds a request item for test documents.
func reqItem(name, method, rawURL string, opts ...itemOpt) map[string]any {
	item := map[string]any{
		"name": name,
		"request": map[string]any{
			"method": method,
			"url":    map[string]any{"raw": rawURL},
		},
	}
	for _, opt := range opts {
		opt(item)
	}
	return item
}

// folderItem builds a folder holding the given children.
func folderItem(name, description string, children ...map[string]any) map[string]any {
	items := make([]any, 0, len(children))
	for _, c := range children {
		items = append(items, c)
	}
	folder := map[string]any{"name": name, "item": items}
	if description != "" {
		folder["description"] = description
	}
	return folder
}

func addItemEvent(item map[string]any, listen, script string) {
	lines := make([]any, 0)
	for _, line := range strings.Split(script, "\n") {
		lines = append(lines, line)
	}
	event := map[string]any{
		"listen": listen,
		"script": map[string]any{"exec": lines, "type": "text/javascript"},
	}
	events, _ := item["event"].([]any)
	item["event"] = append(events, event)
}

func withTestScript(script string) itemOpt {
	return func(item map[string]any) { addItemEvent(item, "test", script) }
}

func withPreRequestScript(script string) itemOpt {
	return func(item map[string]any) { addItemEvent(item, "prerequest", script) }
}

func withDescription(desc string) itemOpt {
	return func(item map[string]any) { item["description"] = desc }
}

func withResponse(name, body string, code int) itemOpt {
	return func(item map[string]any) {
		resp := map[string]any{"name": name, "body": body, "code": code}
		responses, _ := item["response"].([]any)
		item["response"] = append(responses, resp)
	}
}

func withHeader(key, value string) itemOpt {
	return func(item map[string]any) {
		req := item["request"].(map[string]any)
		headers, _ := req["header"].([]any)
		req["header"] = append(headers, map[string]any{"key": key, "value": value})
	}
}

func withQueryParam(key, description string) itemOpt {
	return func(item map[string]any) {
		req := item["request"].(map[string]any)
		urlObj := req["url"].(map[string]any)
		query, _ := urlObj["query"].([]any)
		param := map[string]any{"key": key}
		if description != "" {
			param["description"] = description
		}
		urlObj["query"] = append(query, param)
	}
}

// cleanRequest is a request no default rule complains about.
func cleanRequest(name string) map[string]any {
	return reqItem(name, "GET", "{{base_url}}/pets",
		withDescription("Lists the pets available for adoption."),
		withTestScript(cleanTestScript),
		withResponse("200 OK", `{"pets":[]}`, 200),
	)
}

func docRoot(description string, items ...map[string]any) map[string]any {
	arr := make([]any, 0, len(items))
	for _, it := range items {
		arr = append(arr, it)
	}
	return map[string]any{
		"info": map[string]any{
			"name":        "Pet Store API",
			"description": description,
			"schema":      "https://schema.getpostman.com/json/collection/v2.1.0/collection.json",
		},
		"item": arr,
	}
}

func parseRoot(t *testing.T, root map[string]any) *collection.Collection {
	t.Helper()
	data, err := json.Marshal(root)
	require.NoError(t, err)
	col, err := collection.Parse(data)
	require.NoError(t, err)
	return col
}

func buildDoc(t *testing.T, description string, items ...map[string]any) *collection.Collection {
	t.Helper()
	return parseRoot(t, docRoot(description, items...))
}

// runRule checks the collection with a single rule.
func runRule(t *testing.T, rule Rule, col *collection.Collection) []Issue {
	t.Helper()
	issues, err := rule.Check(col, DefaultConfig())
	require.NoError(t, err)
	return issues
}

func ruleIDs(issues []Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, issue.RuleID)
	}
	return ids
}

func issuePaths(issues []Issue) []string {
	paths := make([]string, 0, len(issues))
	for _, issue := range issues {
		paths = append(paths, issue.Path)
	}
	return paths
}

func hasMessage(issues []Issue, message string) bool {
	for _, issue := range issues {
		if issue.Message == message {
			return true
		}
	}
	return false
}
