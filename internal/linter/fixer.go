package linter

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/linterman/linterman/internal/collection"
)

var belowPattern = regexp.MustCompile(`\.below\((\d+)\)`)

// applyFixes applies each issue's suggested fix in order. A fix whose
// target cannot be resolved, or whose application would not change the
// document, is skipped; the returned count covers actual mutations only,
// so a second pass over a fixed collection reports zero.
func applyFixes(c *collection.Collection, issues []Issue) int {
	applied := 0
	for _, issue := range issues {
		if issue.Fix == nil {
			continue
		}
		if applySingleFix(c, issue.Path, issue.Fix) {
			applied++
			continue
		}
		log.WithFields(log.Fields{
			"rule": issue.RuleID,
			"path": issue.Path,
			"fix":  issue.Fix.Type,
		}).Debug("fix skipped")
	}
	return applied
}

func applySingleFix(c *collection.Collection, path string, fix *Fix) bool {
	it, ok := c.ItemAt(path)
	if !ok {
		return false
	}

	switch fix.Type {
	case FixRenameRequest:
		if fix.SuggestedName == "" || it.Name() == fix.SuggestedName {
			return false
		}
		it.SetName(fix.SuggestedName)
		return true

	case FixAddTest, FixAddResponseTimeTest, FixAddSchemaValidation:
		code := fix.TestCode
		if code == "" {
			code = fix.SuggestedCode
		}
		if code == "" {
			return false
		}
		return addTestCode(it, code)

	// Older exports used different names for these two actions.
	case FixUpdateDescription, "fix_test_description_uri":
		return updateTestDescription(it, fix.OldDescription, fix.NewDescription)
	case FixAdjustThreshold, "update_threshold":
		return adjustThreshold(it, fix.SuggestedThreshold)

	case FixUseEnvironmentVar:
		return applyEnvironmentVariable(it, fix.Field, fix.SuggestedVariable)

	case FixMaskSecret:
		return it.ReplaceInRequestStrings(fix.Match, fix.Replacement) > 0
	}
	return false
}

// ensureScriptVariables inserts a pre-request script defining the
// variables the new test code relies on. An item that already carries a
// pre-request script is left alone.
func ensureScriptVariables(it *collection.Item, code string) bool {
	needsLocation := strings.Contains(code, "location")
	needsRequestName := strings.Contains(code, "requestName")
	if !needsLocation && !needsRequestName {
		return false
	}
	for _, ev := range it.Events() {
		if ev["listen"] == "prerequest" {
			return false
		}
	}

	var lines []string
	if needsLocation {
		lines = append(lines,
			"// Define the location variable for tests",
			"pm.environment.set('location', pm.request.url.getPath());")
	}
	if needsRequestName {
		lines = append(lines,
			"// Define the requestName variable for tests",
			"pm.environment.set('requestName', pm.info.requestName);")
	}
	it.AddEvent("prerequest", lines)
	return true
}

// addTestCode appends test code to the item's first test event, creating
// the event when none exists. Code similar to an already present test is
// not appended twice.
func addTestCode(it *collection.Item, code string) bool {
	changed := ensureScriptVariables(it, code)

	for _, ev := range it.Events() {
		if ev["listen"] != "test" {
			continue
		}
		script, ok := ev["script"].(map[string]any)
		if !ok {
			script = map[string]any{"type": "text/javascript"}
			ev["script"] = script
		}
		exec, _ := script["exec"].([]any)
		for _, line := range exec {
			if s, ok := line.(string); ok && similarTest(s, code) {
				return changed
			}
		}
		script["exec"] = append(exec, code)
		return true
	}

	it.AddEvent("test", []string{code})
	return true
}

func similarTest(line, code string) bool {
	for _, marker := range []string{"Status code", "responseTime", "response time"} {
		if strings.Contains(line, marker) && strings.Contains(code, marker) {
			return true
		}
	}
	return false
}

// updateTestDescription rewrites a quoted test description into the
// replacement expression across every test script line that carries it.
func updateTestDescription(it *collection.Item, oldDesc, newDesc string) bool {
	if oldDesc == "" || newDesc == "" {
		return false
	}
	changed := ensureScriptVariables(it, newDesc)

	doubleQuoted := `"` + oldDesc + `"`
	singleQuoted := `'` + oldDesc + `'`
	for _, ev := range it.Events() {
		if ev["listen"] != "test" {
			continue
		}
		script, _ := ev["script"].(map[string]any)
		exec, _ := script["exec"].([]any)
		for i, line := range exec {
			s, ok := line.(string)
			if !ok || (!strings.Contains(s, doubleQuoted) && !strings.Contains(s, singleQuoted)) {
				continue
			}
			exec[i] = strings.ReplaceAll(strings.ReplaceAll(s, doubleQuoted, newDesc), singleQuoted, newDesc)
			changed = true
		}
	}
	return changed
}

// adjustThreshold lowers oversized response time limits in the item's
// test scripts to the suggested value.
func adjustThreshold(it *collection.Item, newThreshold int) bool {
	if newThreshold <= 0 {
		return false
	}
	changed := false
	for _, ev := range it.Events() {
		if ev["listen"] != "test" {
			continue
		}
		script, _ := ev["script"].(map[string]any)
		exec, _ := script["exec"].([]any)
		for i, line := range exec {
			s, ok := line.(string)
			if !ok || !strings.Contains(s, "responseTime") || !strings.Contains(s, "below") {
				continue
			}
			m := belowPattern.FindStringSubmatch(s)
			if m == nil {
				continue
			}
			threshold, err := strconv.Atoi(m[1])
			if err != nil || threshold <= maxResponseTimeMs {
				continue
			}
			exec[i] = strings.ReplaceAll(s,
				fmt.Sprintf(".below(%d)", threshold),
				fmt.Sprintf(".below(%d)", newThreshold))
			changed = true
		}
	}
	return changed
}

// applyEnvironmentVariable swaps the scheme and host of a literal request
// URL for the suggested variable, updating both the raw string and the
// structured URL object when present.
func applyEnvironmentVariable(it *collection.Item, field, variable string) bool {
	if field != "url" || variable == "" {
		return false
	}
	raw := it.RawURL()
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	origin := u.Scheme + "://" + u.Host
	rewritten := variable + strings.TrimPrefix(raw, origin)
	if rewritten == raw {
		return false
	}
	it.SetRawURL(rewritten)
	if obj := it.URLObject(); obj != nil {
		obj["host"] = []any{variable}
		delete(obj, "protocol")
		delete(obj, "port")
	}
	return true
}
