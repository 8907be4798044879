package linter

import (
	"regexp"

	"github.com/linterman/linterman/internal/collection"
)

var testCallPattern = regexp.MustCompile(`pm\.test\s*\(`)

// CollectStats walks the tree for structural counts and tallies issues by
// severity. TotalTests counts pm.test call sites across every test script
// in the document, collection-level and folder-level scripts included, so
// one script holding five assertions counts as five tests.
func CollectStats(c *collection.Collection, issues []Issue) Stats {
	var s Stats

	for _, script := range c.EventScripts("test") {
		s.TotalTests += len(testCallPattern.FindAllStringIndex(script, -1))
	}
	c.Walk(func(it *collection.Item) {
		switch {
		case it.IsRequest():
			s.TotalRequests++
		case it.IsFolder():
			s.TotalFolders++
		}
		for _, script := range it.Scripts("test") {
			s.TotalTests += len(testCallPattern.FindAllStringIndex(script, -1))
		}
	})

	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
	}
	return s
}
