package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectStats_StructuralCounts(t *testing.T) {
	folder := folderItem("Pets", "Pet calls.",
		reqItem("GET List pets", "GET", "{{base_url}}/pets",
			withTestScript("pm.test('a', check);\npm.test('b', check);\npm.test ('c', check);")),
		reqItem("GET Count pets", "GET", "{{base_url}}/pets/count"),
	)
	addItemEvent(folder, "test", "pm.test('folder wide', check);")

	root := docRoot(goodOverview, folder)
	root["event"] = []any{
		map[string]any{
			"listen": "test",
			"script": map[string]any{
				"exec": []any{"pm.test('smoke', check);", "pm.test('auth', check);"},
			},
		},
	}
	col := parseRoot(t, root)

	stats := CollectStats(col, nil)
	assert.Equal(t, 2, stats.TotalRequests)
	assert.Equal(t, 1, stats.TotalFolders)
	// Three request-level calls, one folder-level, two collection-level.
	assert.Equal(t, 6, stats.TotalTests)
}

func TestCollectStats_CountsCallSitesNotScripts(t *testing.T) {
	col := buildDoc(t, goodOverview,
		reqItem("GET One", "GET", "{{base_url}}/one",
			withTestScript(cleanTestScript)))

	stats := CollectStats(col, nil)
	assert.Equal(t, 3, stats.TotalTests, "one script with three assertions counts as three tests")
}

func TestCollectStats_SeverityTallies(t *testing.T) {
	col := buildDoc(t, goodOverview, cleanRequest("GET List pets"))
	issues := mkIssues(2, 3, 1)

	stats := CollectStats(col, issues)
	assert.Equal(t, 2, stats.Errors)
	assert.Equal(t, 3, stats.Warnings)
	assert.Equal(t, 1, stats.Infos)
	assert.Equal(t, len(issues), stats.Errors+stats.Warnings+stats.Infos)
}

func TestCollectStats_EmptyCollection(t *testing.T) {
	col := buildDoc(t, "")
	assert.Equal(t, Stats{}, CollectStats(col, nil))
}
